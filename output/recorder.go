package output

import (
	"github.com/sarchlab/chemevo/datarecording"
	"github.com/sarchlab/chemevo/sim"
)

// Table names used by RecorderSink.
const (
	HistoryTable        = "history"
	ElementHistoryTable = "element_history"
	MDFTable            = "mdf"
	TracerTable         = "tracer"
	TracerZTable        = "tracer_abundance"
)

// HistoryRow is a row of HistoryTable.
type HistoryRow struct {
	RunID       string
	Zone        string
	Time        float64
	GasMass     float64
	StellarMass float64
	SFR         float64
	IFR         float64
	OFR         float64
	Recycled    float64
}

// ElementHistoryRow is a row of ElementHistoryTable.
type ElementHistoryRow struct {
	RunID      string
	Zone       string
	Time       float64
	Element    string
	Mass       float64
	Z          float64
	OnH        float64
	Unretained float64
}

// MDFRow is one bin of one distribution, a row of MDFTable.
type MDFRow struct {
	RunID        string
	Zone         string
	Distribution string
	BinLow       float64
	BinHigh      float64
	Density      float64
}

// TracerRow is a row of TracerTable.
type TracerRow struct {
	RunID         string
	TracerID      string
	FormationTime float64
	ZoneOrigin    int
	ZoneFinal     int
	Mass          float64
}

// TracerZRow is a row of TracerZTable.
type TracerZRow struct {
	RunID    string
	TracerID string
	Element  string
	Z        float64
}

// RecorderSink writes the output of a run as rows of a DataRecorder.
type RecorderSink struct {
	recorder datarecording.DataRecorder
	runID    string
	closed   bool
}

// NewRecorderSink creates the output tables in recorder. Rows are tagged
// with runID so that several runs can share a database.
func NewRecorderSink(
	recorder datarecording.DataRecorder,
	runID string,
) *RecorderSink {
	recorder.CreateTable(HistoryTable, HistoryRow{})
	recorder.CreateTable(ElementHistoryTable, ElementHistoryRow{})
	recorder.CreateTable(MDFTable, MDFRow{})
	recorder.CreateTable(TracerTable, TracerRow{})
	recorder.CreateTable(TracerZTable, TracerZRow{})

	return &RecorderSink{
		recorder: recorder,
		runID:    runID,
	}
}

// RunID returns the ID the rows are tagged with.
func (s *RecorderSink) RunID() string {
	return s.runID
}

// WriteHistory implements Sink.
func (s *RecorderSink) WriteHistory(h History) error {
	if s.closed {
		return ErrClosed
	}

	s.recorder.InsertData(HistoryTable, HistoryRow{
		RunID:       s.runID,
		Zone:        h.Zone,
		Time:        h.Time,
		GasMass:     h.GasMass,
		StellarMass: h.StellarMass,
		SFR:         h.SFR,
		IFR:         h.IFR,
		OFR:         h.OFR,
		Recycled:    h.Recycled,
	})

	for _, e := range h.Elements {
		s.recorder.InsertData(ElementHistoryTable, ElementHistoryRow{
			RunID:      s.runID,
			Zone:       h.Zone,
			Time:       h.Time,
			Element:    e.Symbol,
			Mass:       e.Mass,
			Z:          e.Z,
			OnH:        e.OnH,
			Unretained: e.Unretained,
		})
	}

	return nil
}

// WriteMDF implements Sink.
func (s *RecorderSink) WriteMDF(m MDF) error {
	if s.closed {
		return ErrClosed
	}

	for _, d := range m.Distributions {
		for b, density := range d.Density {
			s.recorder.InsertData(MDFTable, MDFRow{
				RunID:        s.runID,
				Zone:         m.Zone,
				Distribution: d.Label,
				BinLow:       m.Bins[b],
				BinHigh:      m.Bins[b+1],
				Density:      density,
			})
		}
	}

	return nil
}

// WriteTracer implements Sink.
func (s *RecorderSink) WriteTracer(t TracerRecord) error {
	if s.closed {
		return ErrClosed
	}

	id := sim.GetIDGenerator().Generate()

	s.recorder.InsertData(TracerTable, TracerRow{
		RunID:         s.runID,
		TracerID:      id,
		FormationTime: t.FormationTime,
		ZoneOrigin:    t.ZoneOrigin,
		ZoneFinal:     t.ZoneFinal,
		Mass:          t.Mass,
	})

	for i, z := range t.Z {
		s.recorder.InsertData(TracerZTable, TracerZRow{
			RunID:    s.runID,
			TracerID: id,
			Element:  t.Elements[i],
			Z:        z,
		})
	}

	return nil
}

// Close flushes the buffered rows. The recorder itself stays open so that
// other writers can keep using it.
func (s *RecorderSink) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.recorder.Flush()

	return nil
}

// MapTables maps the output tables on reader.
func MapTables(reader datarecording.DataReader) {
	reader.MapTable(HistoryTable, HistoryRow{})
	reader.MapTable(ElementHistoryTable, ElementHistoryRow{})
	reader.MapTable(MDFTable, MDFRow{})
	reader.MapTable(TracerTable, TracerRow{})
	reader.MapTable(TracerZTable, TracerZRow{})
}

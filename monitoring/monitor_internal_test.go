package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chemevo/ism"
	"github.com/sarchlab/chemevo/multizone"
	"github.com/sarchlab/chemevo/yields"
	"github.com/sarchlab/chemevo/zone"
)

func sampleZone(name string) *zone.Zone {
	o := zone.NewElement("o", 0.0057, &yields.Settings{
		CCSNeModel: yields.ConstantCCSNe(0.015),
	})

	return zone.MakeBuilder().
		WithName(name).
		WithEvolution(ism.SFRMode{
			SFR:     ism.Constant(1),
			TauStar: ism.Constant(2),
		}).
		WithElements(o).
		Build()
}

func get(m *Monitor, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	m.router().ServeHTTP(rec, req)

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		m  *Monitor
		mz *multizone.Multizone
	)

	BeforeEach(func() {
		m = NewMonitor()
		mz = multizone.New(
			[]*zone.Zone{sampleZone("inner"), sampleZone("outer")},
			multizone.MigrationMatrix{},
			multizone.WithName("disk"),
		)
		Expect(mz.Setup([]float64{1})).To(Succeed())
		m.WatchMultizone(mz, 100)
	})

	It("should publish the state after every step", func() {
		Expect(mz.Step()).To(Succeed())
		Expect(mz.Step()).To(Succeed())

		s := m.Status()
		Expect(s.Run).To(Equal("disk"))
		Expect(s.Timestep).To(Equal(2))
		Expect(s.Tracers).To(Equal(4))
		Expect(s.Zones).To(HaveLen(2))
		Expect(s.Zones[1].Name).To(Equal("outer"))
		Expect(s.Zones[0].GasMass).To(BeNumerically("~", 2, 1e-12))
		Expect(s.Zones[0].Abundances[0].OnH).NotTo(BeNil())
	})

	It("should leave absent elements without [X/H]", func() {
		z := sampleZone("empty")
		Expect(z.Setup([]float64{1})).To(Succeed())

		s := ZoneRunStatus(z)

		Expect(s.Zones[0].Abundances[0].OnH).To(BeNil())
	})

	It("should count steps on the progress bar", func() {
		for i := 0; i < 3; i++ {
			Expect(mz.Step()).To(Succeed())
		}

		rec := get(m, "/api/progress")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var bars []progressRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("disk"))
		Expect(bars[0].Total).To(Equal(uint64(100)))
		Expect(bars[0].Finished).To(Equal(uint64(3)))
	})

	It("should remove completed progress bars", func() {
		bar := m.CreateProgressBar("extra", 1)
		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(HaveLen(1))
	})

	It("should serve the status as json", func() {
		Expect(mz.Step()).To(Succeed())

		rec := get(m, "/api/status")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var s Status
		Expect(json.Unmarshal(rec.Body.Bytes(), &s)).To(Succeed())
		Expect(s.Zones).To(HaveLen(2))
		Expect(s.Time).To(BeNumerically("~", 0.01, 1e-12))

		rec = get(m, "/api/list_zones")
		var names []string
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"inner", "outer"}))

		rec = get(m, "/api/now")
		Expect(rec.Body.String()).To(Equal(`{"now":0.0100000000}`))
	})

	It("should serialize a zone", func() {
		Expect(mz.Step()).To(Succeed())

		rec := get(m, "/api/zone/outer")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))

		rec = get(m, "/api/zone/nowhere")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should serialize a field of a zone", func() {
		Expect(mz.Step()).To(Succeed())

		req, _ := json.Marshal(fieldReq{ZoneName: "inner", FieldName: "GasMass"})
		rec := get(m, "/api/field/"+url.PathEscape(string(req)))
		Expect(rec.Code).To(Equal(http.StatusOK))

		rec = get(m, "/api/field/"+url.PathEscape("{"))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should hold the run while paused", func() {
		get(m, "/api/pause")
		Expect(m.Paused()).To(BeTrue())

		done := make(chan error)
		go func() {
			done <- mz.Step()
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		get(m, "/api/continue")
		Eventually(done).Should(Receive(BeNil()))
		Expect(m.Paused()).To(BeFalse())
	})
})

// Package monitoring serves the progress and the state of a running model
// over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/chemevo/multizone"
	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/zone"
)

// Monitor can turn a run into a server and allows external monitoring and
// pausing of the run.
type Monitor struct {
	portNumber  int
	openBrowser bool

	statusLock sync.Mutex
	status     Status

	pauseLock sync.Mutex
	pauseCond *sync.Cond
	paused    bool

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.pauseCond = sync.NewCond(&m.pauseLock)

	return m
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes the monitor open its status page once the server starts.
func (m *Monitor) WithBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// WatchMultizone publishes the state of m after every global step and counts
// the steps on a progress bar with totalSteps steps.
func (m *Monitor) WatchMultizone(mz *multizone.Multizone, totalSteps uint64) {
	bar := m.CreateProgressBar(mz.Name(), totalSteps)

	mz.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != multizone.HookPosGlobalStep {
			return
		}

		m.Publish(MultizoneStatus(mz))
		bar.IncrementFinished(1)
		m.waitIfPaused()
	}))
}

// WatchZone publishes the state of a one-zone run after every timestep.
func (m *Monitor) WatchZone(z *zone.Zone, totalSteps uint64) {
	bar := m.CreateProgressBar(z.Name(), totalSteps)

	z.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != zone.HookPosZoneStepEnd {
			return
		}

		m.Publish(ZoneRunStatus(z))
		bar.IncrementFinished(1)
		m.waitIfPaused()
	}))
}

// Publish replaces the status served by the monitor.
func (m *Monitor) Publish(s Status) {
	m.statusLock.Lock()
	defer m.statusLock.Unlock()

	m.status = s
}

// Status returns the last published status.
func (m *Monitor) Status() Status {
	m.statusLock.Lock()
	defer m.statusLock.Unlock()

	return m.status
}

// Pause makes the run wait at the end of its next step.
func (m *Monitor) Pause() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	m.paused = true
}

// Continue releases a paused run.
func (m *Monitor) Continue() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	m.paused = false
	m.pauseCond.Broadcast()
}

// Paused reports whether the run is asked to wait.
func (m *Monitor) Paused() bool {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	return m.paused
}

func (m *Monitor) waitIfPaused() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	for m.paused {
		m.pauseCond.Wait()
	}
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseRun)
	r.HandleFunc("/api/continue", m.continueRun)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/status", m.listStatus)
	r.HandleFunc("/api/list_zones", m.listZones)
	r.HandleFunc("/api/zone/{name}", m.listZoneDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server and returns its address.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring run with %s\n", url)

	r := m.router()
	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	if m.openBrowser {
		err = browser.OpenURL(url + "/api/status")
		if err != nil {
			log.Printf("cannot open browser: %v", err)
		}
	}

	return url
}

func (m *Monitor) pauseRun(w http.ResponseWriter, _ *http.Request) {
	m.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueRun(w http.ResponseWriter, _ *http.Request) {
	m.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.Status().Time
	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

func (m *Monitor) listStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.Status())
}

func (m *Monitor) listZones(w http.ResponseWriter, _ *http.Request) {
	status := m.Status()

	names := make([]string, 0, len(status.Zones))
	for _, z := range status.Zones {
		names = append(names, z.Name)
	}

	writeJSON(w, names)
}

func (m *Monitor) listZoneDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	z := m.findZoneOr404(w, name)
	if z == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(z)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	ZoneName  string `json:"zone_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	z := m.findZoneOr404(w, req.ZoneName)
	if z == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(z)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findZoneOr404(
	w http.ResponseWriter,
	name string,
) *ZoneStatus {
	status := m.Status()
	for i := range status.Zones {
		if status.Zones[i].Name == name {
			return &status.Zones[i]
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Zone not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.response())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

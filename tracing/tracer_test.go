package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/chemevo/sim"
)

type domain struct {
	*sim.HookableBase
	name string
}

func newDomain(name string) *domain {
	return &domain{HookableBase: sim.NewHookableBase(), name: name}
}

func (d *domain) Name() string {
	return d.name
}

type taskLog struct {
	started, stepped, ended []Task
}

func (l *taskLog) StartTask(task Task) { l.started = append(l.started, task) }
func (l *taskLog) StepTask(task Task)  { l.stepped = append(l.stepped, task) }
func (l *taskLog) EndTask(task Task)   { l.ended = append(l.ended, task) }

var _ = Describe("Task API", func() {
	var (
		d   *domain
		log *taskLog
	)

	BeforeEach(func() {
		d = newDomain("disk")
		log = &taskLog{}
	})

	It("should not build tasks without hooks", func() {
		Expect(func() { StartTask("", "", d, "", "", nil) }).NotTo(Panic())
	})

	It("should deliver tasks to the tracer", func() {
		CollectTrace(d, log)

		StartTask("1", "0", d, "phase", "migrate", 7)
		AddTaskStep("1", d, "moved")
		EndTask("1", d)

		Expect(log.started).To(HaveLen(1))
		Expect(log.started[0].ParentID).To(Equal("0"))
		Expect(log.started[0].Where).To(Equal("disk"))
		Expect(log.started[0].Detail).To(Equal(7))
		Expect(log.stepped[0].Steps[0].What).To(Equal("moved"))
		Expect(log.ended[0].ID).To(Equal("1"))
	})

	It("should panic on missing fields", func() {
		CollectTrace(d, log)

		Expect(func() { StartTask("", "", d, "phase", "x", nil) }).To(Panic())
		Expect(func() { StartTask("1", "", d, "", "x", nil) }).To(Panic())
		Expect(func() { StartTask("1", "", d, "phase", "", nil) }).To(Panic())
	})

	It("should panic on unnamed domains", func() {
		unnamed := newDomain("")
		CollectTrace(unnamed, log)

		Expect(func() { StartTask("1", "", unnamed, "phase", "x", nil) }).
			To(Panic())
	})

	It("should not attach a tracer twice", func() {
		CollectTrace(d, log)

		Expect(func() { CollectTrace(d, log) }).To(Panic())
	})

	It("should ignore other hook positions", func() {
		CollectTrace(d, log)

		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    &sim.HookPos{Name: "other"},
			Item:   3,
		})

		Expect(log.started).To(BeEmpty())
	})
})

var _ = Describe("TotalTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *TotalTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewTotalTimeTracer(timeTeller, WhatIs("migrate"))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should add up the time of matching tasks", func() {
		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.StartTask(Task{ID: "1", What: "migrate"})
		timeTeller.EXPECT().CurrentTime().Return(1.5)
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().CurrentTime().Return(2.0)
		t.StartTask(Task{ID: "2", What: "migrate"})
		timeTeller.EXPECT().CurrentTime().Return(3.0)
		t.EndTask(Task{ID: "2"})

		Expect(t.TotalTime()).To(BeNumerically("~", 1.5, 1e-12))
		Expect(t.TotalCount()).To(Equal(uint64(2)))
	})

	It("should skip other tasks", func() {
		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.StartTask(Task{ID: "1", What: "spawn"})
		timeTeller.EXPECT().CurrentTime().Return(2.0)
		t.EndTask(Task{ID: "1"})

		Expect(t.TotalTime()).To(Equal(0.0))
		Expect(t.TotalCount()).To(Equal(uint64(0)))
	})
})

var _ = Describe("AverageTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *AverageTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewAverageTimeTracer(timeTeller, KindIs("step"))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should average the task time", func() {
		timeTeller.EXPECT().CurrentTime().Return(0.0)
		t.StartTask(Task{ID: "1", Kind: "step"})
		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.StartTask(Task{ID: "2", Kind: "step"})
		timeTeller.EXPECT().CurrentTime().Return(4.0)
		t.EndTask(Task{ID: "2"})

		Expect(t.AverageTime()).To(BeNumerically("~", 2, 1e-12))
		Expect(t.TotalCount()).To(Equal(uint64(2)))

		longest, id := t.LongestTime()
		Expect(longest).To(Equal(3.0))
		Expect(id).To(Equal("2"))
	})

	It("should ignore tasks of other kinds and unfinished tasks", func() {
		t.StartTask(Task{ID: "1", Kind: "phase"})
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().CurrentTime().Return(0.0)
		t.StartTask(Task{ID: "2", Kind: "step"})

		Expect(t.TotalCount()).To(BeZero())
		Expect(t.AverageTime()).To(BeZero())
	})
})

var _ = Describe("StepCountTracer", func() {
	It("should count steps and the tasks reaching them", func() {
		t := NewStepCountTracer(KindIs("phase"))

		t.StartTask(Task{ID: "1", Kind: "phase"})
		t.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "a"}}})
		t.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "a"}}})
		t.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "b"}}})
		t.EndTask(Task{ID: "1"})

		Expect(t.StepNames()).To(Equal([]string{"a", "b"}))
		Expect(t.StepCount("a")).To(Equal(uint64(2)))
		Expect(t.TaskCount("a")).To(Equal(uint64(1)))
		Expect(t.TaskCount("b")).To(Equal(uint64(1)))
	})

	It("should not count steps of filtered or ended tasks", func() {
		t := NewStepCountTracer(WhatIs("zones"))

		t.StartTask(Task{ID: "1", What: "spawn"})
		t.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "a"}}})

		t.StartTask(Task{ID: "2", What: "zones"})
		t.StepTask(Task{ID: "2", Steps: []TaskStep{{What: "b"}}})
		t.EndTask(Task{ID: "2"})
		t.StepTask(Task{ID: "2", Steps: []TaskStep{{What: "b"}}})

		Expect(t.StepNames()).To(Equal([]string{"b"}))
		Expect(t.StepCount("a")).To(BeZero())
		Expect(t.StepCount("b")).To(Equal(uint64(1)))
	})
})

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		recorder   *MockDataRecorder
		t          *DBTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		recorder = NewMockDataRecorder(mockCtrl)

		recorder.EXPECT().CreateTable(TraceTable, TaskRow{})
		t = NewDBTracer(timeTeller, recorder)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write ended tasks", func() {
		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.StartTask(Task{
			ID: "1", ParentID: "0", Kind: "phase", What: "spawn", Where: "mw",
		})

		timeTeller.EXPECT().CurrentTime().Return(2.0)
		recorder.EXPECT().InsertData(TraceTable, TaskRow{
			ID:        "1",
			ParentID:  "0",
			Kind:      "phase",
			What:      "spawn",
			Location:  "mw",
			StartTime: 1,
			EndTime:   2,
		})
		t.EndTask(Task{ID: "1"})
	})

	It("should skip tasks outside the time range", func() {
		t.SetTimeRange(5, 10)

		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.StartTask(Task{ID: "1", Kind: "phase", What: "spawn", Where: "mw"})
		timeTeller.EXPECT().CurrentTime().Return(2.0)
		t.EndTask(Task{ID: "1"})

		timeTeller.EXPECT().CurrentTime().Return(11.0)
		t.StartTask(Task{ID: "2", Kind: "phase", What: "spawn", Where: "mw"})
	})

	It("should end open tasks on terminate", func() {
		timeTeller.EXPECT().CurrentTime().Return(1.0)
		t.StartTask(Task{ID: "1", Kind: "step", What: "global_step", Where: "mw"})

		timeTeller.EXPECT().CurrentTime().Return(3.0)
		recorder.EXPECT().InsertData(TraceTable, gomock.Any()).
			Do(func(_ string, entry any) {
				Expect(entry.(TaskRow).EndTime).To(Equal(3.0))
			})
		recorder.EXPECT().Flush()

		t.Terminate()
	})

	It("should reject incomplete tasks", func() {
		Expect(func() { t.StartTask(Task{ID: "1"}) }).To(Panic())
	})
})

var _ = Describe("WallClock", func() {
	It("should not go backwards", func() {
		c := NewWallClock()
		a := c.CurrentTime()
		b := c.CurrentTime()

		Expect(a).To(BeNumerically(">=", 0))
		Expect(b).To(BeNumerically(">=", a))
	})
})

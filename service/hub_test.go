package service

import (
	"errors"
	"reflect"
	"testing"
)

type fakeService struct {
	name     string
	deps     []string
	initErr  error
	startErr error
	log      *[]string
	args     []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return f.startErr
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHubDependencyOrder(t *testing.T) {
	var calls []string
	h := NewHub(nil)
	// Registered out of dependency order
	_ = h.Register(&fakeService{name: "network", deps: []string{"sensor"}, log: &calls})
	_ = h.Register(&fakeService{name: "audio", log: &calls})
	_ = h.Register(&fakeService{name: "sensor", log: &calls})

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	h.StopAll()

	want := []string{
		"init:audio", "init:sensor", "init:network",
		"start:audio", "start:sensor", "start:network",
		"stop:network", "stop:sensor", "stop:audio",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls\n got %v\nwant %v", calls, want)
	}
}

func TestHubRegisterArgs(t *testing.T) {
	var calls []string
	h := NewHub(nil)
	svc := &fakeService{name: "sensor", log: &calls}
	if err := h.Register(svc, "cfg", 3); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(&fakeService{name: "sensor", log: &calls}); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}
	if len(svc.args) != 2 || svc.args[0] != "cfg" || svc.args[1] != 3 {
		t.Errorf("Init args %v", svc.args)
	}
}

func TestHubStartRollback(t *testing.T) {
	var calls []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", log: &calls})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &calls})
	_ = h.Register(&fakeService{name: "c", deps: []string{"b"}, startErr: errors.New("boom"), log: &calls})

	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}
	calls = calls[:0]
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}

	want := []string{"start:a", "start:b", "start:c", "stop:b", "stop:a"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls\n got %v\nwant %v", calls, want)
	}
	if h.Started("a") {
		t.Error("Expected started list cleared after rollback")
	}
}

func TestHubInitRollback(t *testing.T) {
	var calls []string
	h := NewHub(nil)
	_ = h.Register(&fakeService{name: "a", log: &calls})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("no device"), log: &calls})

	if err := h.InitAll(); err == nil {
		t.Fatal("Expected init failure")
	}
	want := []string{"init:a", "init:b", "stop:a"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls\n got %v\nwant %v", calls, want)
	}
}

func TestHubSortErrors(t *testing.T) {
	tests := []struct {
		name     string
		services []*fakeService
	}{
		{"missing dependency", []*fakeService{{name: "a", deps: []string{"ghost"}}}},
		{"cycle", []*fakeService{{name: "a", deps: []string{"b"}}, {name: "b", deps: []string{"a"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			h := NewHub(nil)
			for _, s := range tt.services {
				s.log = &calls
				_ = h.Register(s)
			}
			if err := h.InitAll(); err == nil {
				t.Error("Expected sort error")
			}
			if len(calls) != 0 {
				t.Errorf("Expected no Init calls, got %v", calls)
			}
		})
	}
}

func TestMustGet(t *testing.T) {
	var calls []string
	h := NewHub(nil)
	svc := &fakeService{name: "audio", log: &calls}
	_ = h.Register(svc)

	if got := MustGet[*fakeService](h, "audio"); got != svc {
		t.Error("Expected registered instance")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unknown service")
		}
	}()
	MustGet[*fakeService](h, "missing")
}

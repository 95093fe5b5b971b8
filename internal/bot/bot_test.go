package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/fitbot/core/telegram/state"
	"github.com/m3rciful/fitbot/internal/goals"
	"github.com/m3rciful/fitbot/internal/model"
	"github.com/m3rciful/fitbot/internal/tracker"

	tele "gopkg.in/telebot.v4"
)

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"250", 250, true},
		{" 30 ", 30, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"ten", 0, false},
		{"2.5", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parsePositiveInt(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parsePositiveInt(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewRegistersSurface(t *testing.T) {
	b := New(nil, state.NewMemoryManager())

	wantCommands := []string{
		"/start", "/help", "/set_profile",
		"/log_water", "/log_food", "/log_workout",
		"/check_progress", "/cancel", "/status",
	}
	for _, name := range wantCommands {
		if _, _, ok := b.Registry().LookupCommand(name); !ok {
			t.Errorf("command %s not registered", name)
		}
	}

	for _, key := range []string{"plot_water", "plot_food", "progress_refresh"} {
		if _, ok := b.Registry().GetCallback(key); !ok {
			t.Errorf("callback %s not registered", key)
		}
	}

	if b.Registry().TextFallback() == nil {
		t.Error("text fallback not set")
	}
}

func TestRoutesCoverCommandsAndText(t *testing.T) {
	b := New(nil, state.NewMemoryManager())
	routes := b.Routes(0)

	endpoints := make(map[string]bool, len(routes))
	for _, r := range routes {
		ep, ok := r.Endpoint.(string)
		if !ok {
			t.Fatalf("unexpected endpoint type %T", r.Endpoint)
		}
		endpoints[ep] = true
	}

	if !endpoints["/set_profile"] || !endpoints["/check_progress"] {
		t.Error("command routes missing")
	}
	if len(routes) < len(b.Registry().Commands())+2 {
		t.Errorf("expected callback and text routes on top of %d commands, got %d routes",
			len(b.Registry().Commands()), len(routes))
	}
}

// stubContext covers the few tele.Context methods the flow handlers
// touch; everything else panics via the embedded nil interface.
type stubContext struct {
	tele.Context
	text   string
	sender *tele.User
	sent   []string
	store  map[string]interface{}
}

func newStubContext(userID int64, text string) *stubContext {
	return &stubContext{
		text:   text,
		sender: &tele.User{ID: userID},
		store:  map[string]interface{}{"logger_ctx": context.Background()},
	}
}

func (s *stubContext) Text() string       { return s.text }
func (s *stubContext) Sender() *tele.User { return s.sender }

func (s *stubContext) Get(key string) interface{}    { return s.store[key] }
func (s *stubContext) Set(key string, v interface{}) { s.store[key] = v }

func (s *stubContext) Send(what interface{}, opts ...interface{}) error {
	if msg, ok := what.(string); ok {
		s.sent = append(s.sent, msg)
	}
	return nil
}

func (s *stubContext) lastSent() string {
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1]
}

func TestProfileWeightStaysOnBadInput(t *testing.T) {
	fsm := state.NewMemoryManager()
	b := New(nil, fsm)

	const userID = int64(7)
	fsm.SetState(userID, StateProfileWeight)

	c := newStubContext(userID, "abc")
	if err := b.profileWeight(c); err != nil {
		t.Fatal(err)
	}
	if got := fsm.GetState(userID); got != StateProfileWeight {
		t.Fatalf("state advanced to %q on invalid input", got)
	}
	if _, ok := fsm.GetTempInt(userID, tempWeight); ok {
		t.Error("weight recorded from invalid input")
	}
	if c.lastSent() != msgNumberWanted {
		t.Errorf("reply = %q, want %q", c.lastSent(), msgNumberWanted)
	}

	c = newStubContext(userID, "70")
	if err := b.profileWeight(c); err != nil {
		t.Fatal(err)
	}
	if got := fsm.GetState(userID); got != StateProfileHeight {
		t.Fatalf("state = %q after valid input, want %q", got, StateProfileHeight)
	}
	if w, ok := fsm.GetTempInt(userID, tempWeight); !ok || w != 70 {
		t.Fatalf("weight temp = (%d, %v), want (70, true)", w, ok)
	}
}

func TestWaterVolumeStaysOnBadInput(t *testing.T) {
	fsm := state.NewMemoryManager()
	b := New(nil, fsm)

	const userID = int64(8)
	fsm.SetState(userID, StateWaterVolume)

	c := newStubContext(userID, "a lot")
	if err := b.waterVolume(c); err != nil {
		t.Fatal(err)
	}
	if got := fsm.GetState(userID); got != StateWaterVolume {
		t.Fatalf("state advanced to %q on invalid input", got)
	}
	if c.lastSent() != msgNumberWanted {
		t.Errorf("reply = %q, want %q", c.lastSent(), msgNumberWanted)
	}
}

type brokenStore struct{}

func (brokenStore) Init(ctx context.Context) error { return nil }
func (brokenStore) Get(ctx context.Context, id int64) (*model.User, error) {
	return nil, errors.New("disk read")
}
func (brokenStore) Put(ctx context.Context, u *model.User) error { return nil }

func TestFlowStartOnStoreFailure(t *testing.T) {
	svc := tracker.New(brokenStore{}, goals.New(goals.DefaultParams(), nil), nil)
	fsm := state.NewMemoryManager()
	b := New(svc, fsm)

	const userID = int64(9)
	c := newStubContext(userID, "/log_water")
	if err := b.startWater(c); err != nil {
		t.Fatal(err)
	}
	if c.lastSent() == msgNoProfile {
		t.Fatal("store failure answered with the setup prompt")
	}
	if c.lastSent() != msgInternalError {
		t.Errorf("reply = %q, want %q", c.lastSent(), msgInternalError)
	}
	if fsm.InProgress(userID) {
		t.Error("dialog started despite store failure")
	}
}

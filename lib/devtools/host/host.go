package host

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/util"
	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("host")

var (
	sessionsOpened  = metrics.NewCounter(`rkv_host_sessions_opened_total`)
	sessionsClosed  = metrics.NewCounter(`rkv_host_sessions_closed_total`)
	actionsRecorded = metrics.NewCounter(`rkv_host_actions_recorded_total`)
	commandsQueued  = metrics.NewCounter(`rkv_host_commands_queued_total`)
)

// session is an open debugging session
type session struct {
	info   SessionInfo
	queue  *util.LockFreeMPSC[devtools.Message]
	pollMu sync.Mutex // the queue has a single consumer

	mu        sync.Mutex // guards history, nextIndex and info.Actions
	history   []HistoryEntry
	nextIndex uint64
}

type hostImpl struct {
	seed      uint64
	startedAt time.Time
	sessions  *xsync.MapOf[uint64, *session]
	sizes     *util.SizeHistogram

	actions atomic.Uint64
}

// NewHost creates a new in-process debugging host
func NewHost() IHost {
	return &hostImpl{
		seed:      util.GenerateSeed(),
		startedAt: time.Now(),
		sessions:  xsync.NewMapOf[uint64, *session](),
		sizes:     util.NewSizeHistogram(),
	}
}

func (h *hostImpl) session(id uint64) (*session, error) {
	s, ok := h.sessions.Load(id)
	if !ok {
		return nil, NewError(RetCSessionNotFound, fmt.Sprintf("no session with id %d", id))
	}
	return s, nil
}

// record appends an entry to the history of s, dropping the oldest entries beyond MaxAge
func (h *hostImpl) record(s *session, action devtools.Action, state json.RawMessage, reset bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reset {
		s.history = s.history[:0]
	}
	s.history = append(s.history, HistoryEntry{
		Index:  s.nextIndex,
		Action: action,
		State:  slices.Clone(state),
		Time:   time.Now(),
	})
	s.nextIndex++
	if overflow := len(s.history) - s.info.MaxAge; overflow > 0 {
		s.history = slices.Delete(s.history, 0, overflow)
	}
	if !reset {
		s.info.Actions++
	}

	h.sizes.AddSample(len(state))
}

func (h *hostImpl) enqueue(id uint64, msg devtools.Message) error {
	s, err := h.session(id)
	if err != nil {
		return err
	}
	if !s.queue.Push(&msg) {
		return NewError(RetCInvalidOperation, fmt.Sprintf("session %d is closed", id))
	}
	commandsQueued.Inc()
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see host/interface.go)
// --------------------------------------------------------------------------

func (h *hostImpl) Connect(name string, opts devtools.ConnectOptions) (SessionInfo, error) {
	if name == "" {
		return SessionInfo{}, NewError(RetCInvalidOperation, "session name must not be empty")
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = devtools.DefaultMaxAge
	}

	instance := uuid.NewString()
	s := &session{
		info: SessionInfo{
			ID:          util.HashString(name+"/"+instance, h.seed),
			Name:        name,
			Instance:    instance,
			MaxAge:      opts.MaxAge,
			Features:    opts.Features,
			ConnectedAt: time.Now(),
		},
		queue: util.NewLockFreeMPSC[devtools.Message](),
	}

	if _, loaded := h.sessions.LoadOrStore(s.info.ID, s); loaded {
		return SessionInfo{}, NewError(RetCInternalError, "session id collision, retry")
	}
	sessionsOpened.Inc()
	Logger.Infof("session %d (%s) connected", s.info.ID, name)

	return s.info, nil
}

func (h *hostImpl) Init(id uint64, state json.RawMessage) error {
	s, err := h.session(id)
	if err != nil {
		return err
	}
	h.record(s, devtools.Action{Type: "@@INIT"}, state, true)
	return nil
}

func (h *hostImpl) Send(id uint64, action devtools.Action, state json.RawMessage) error {
	s, err := h.session(id)
	if err != nil {
		return err
	}
	h.record(s, action, state, false)

	h.actions.Add(1)
	actionsRecorded.Inc()
	return nil
}

func (h *hostImpl) Poll(id uint64) ([]devtools.Message, error) {
	s, err := h.session(id)
	if err != nil {
		return nil, err
	}
	s.pollMu.Lock()
	queued := s.queue.Drain(0)
	s.pollMu.Unlock()

	msgs := make([]devtools.Message, len(queued))
	for i, msg := range queued {
		msgs[i] = *msg
	}
	return msgs, nil
}

func (h *hostImpl) Disconnect(id uint64) error {
	s, ok := h.sessions.LoadAndDelete(id)
	if !ok {
		return NewError(RetCSessionNotFound, fmt.Sprintf("no session with id %d", id))
	}
	s.queue.Close()
	sessionsClosed.Inc()
	Logger.Infof("session %d (%s) disconnected", id, s.info.Name)
	return nil
}

func (h *hostImpl) Sessions() ([]SessionInfo, error) {
	sessions := make([]SessionInfo, 0, h.sessions.Size())
	h.sessions.Range(func(_ uint64, s *session) bool {
		s.mu.Lock()
		info := s.info
		s.mu.Unlock()
		info.Pending = s.queue.Len()
		sessions = append(sessions, info)
		return true
	})
	slices.SortFunc(sessions, func(a, b SessionInfo) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return sessions, nil
}

func (h *hostImpl) History(id uint64) ([]HistoryEntry, error) {
	s, err := h.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history), nil
}

func (h *hostImpl) Jump(id uint64, index uint64) error {
	s, err := h.session(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	var state json.RawMessage
	found := false
	for _, entry := range s.history {
		if entry.Index == index {
			state, found = entry.State, true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return NewError(RetCInvalidIndex, fmt.Sprintf("session %d has no history entry %d", id, index))
	}
	return h.enqueue(id, devtools.NewJumpMessage(string(state)))
}

func (h *hostImpl) Reset(id uint64) error {
	return h.enqueue(id, devtools.NewResetMessage())
}

func (h *hostImpl) Dispatch(id uint64, action devtools.Action) error {
	if !action.Verb().Valid() {
		return NewError(RetCInvalidOperation, fmt.Sprintf("unknown action type %q", action.Type))
	}
	msg, err := devtools.NewActionMessage(action)
	if err != nil {
		return NewError(RetCInternalError, err.Error())
	}
	return h.enqueue(id, msg)
}

func (h *hostImpl) GetInfo() (Info, error) {
	return Info{
		StartedAt:  h.startedAt,
		Sessions:   h.sessions.Size(),
		Actions:    h.actions.Load(),
		StateSizes: h.sizes.Summary(),
	}, nil
}

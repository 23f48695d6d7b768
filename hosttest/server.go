package hosttest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/nebulaiq/redismodule-go/host"
	"github.com/nebulaiq/redismodule-go/resource"
)

// Server is an in-memory host API implementation. It is not safe for
// concurrent invocations, matching the single-threaded-per-call model of
// the real context handle; the keyspace itself is concurrency-safe so
// fixtures may be populated from other goroutines.
type Server struct {
	keys   *xsync.MapOf[string, []byte]
	hashes *xsync.MapOf[string, map[string]string]
	sets   *xsync.MapOf[string, map[string]struct{}]

	mu             sync.Mutex
	users          map[string]host.ACLPermission
	currentUser    string
	currentCommand string

	tracker *resource.Tracker
	log     *zap.Logger
	rec     recorder

	flags          host.ContextFlags
	opts           host.ModuleOptions
	keysPosRequest bool
	keyPositions   []int
	replicated     int
	autoMemory     bool
	version        string
}

// NewServer creates a server with an empty keyspace, a "default" user
// holding full permissions, and version 7.2.3.
func NewServer() *Server {
	return &Server{
		keys:        xsync.NewMapOf[string, []byte](),
		hashes:      xsync.NewMapOf[string, map[string]string](),
		sets:        xsync.NewMapOf[string, map[string]struct{}](),
		users:       map[string]host.ACLPermission{"default": host.ACLAll},
		currentUser: "default",
		tracker:     resource.NewTracker(),
		log:         zap.NewNop(),
		version:     "7.2.3",
	}
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(l *zap.Logger) { s.log = l }

// SetVersion sets the version reported by the version capability and the
// INFO text, as "major.minor.patch".
func (s *Server) SetVersion(v string) { s.version = v }

// SetContextFlags sets the flags reported by ContextFlags.
func (s *Server) SetContextFlags(f host.ContextFlags) { s.flags = f }

// SetKeysPositionRequest switches the context into or out of key-position
// introspection mode.
func (s *Server) SetKeysPositionRequest(v bool) { s.keysPosRequest = v }

// RegisterUser adds an ACL user with the given permissions.
func (s *Server) RegisterUser(name string, perms host.ACLPermission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[name] = perms
}

// Tracker exposes the handle accounting for leak assertions.
func (s *Server) Tracker() *resource.Tracker { return s.tracker }

// KeyPositions returns the positions declared via KeyAtPos.
func (s *Server) KeyPositions() []int { return s.keyPositions }

// Replicated returns how many times ReplicateVerbatim was called.
func (s *Server) Replicated() int { return s.replicated }

// ModuleOptionsSet returns the options passed to SetModuleOptions.
func (s *Server) ModuleOptionsSet() host.ModuleOptions { return s.opts }

// AutoMemoryEnabled reports whether AutoMemory was called.
func (s *Server) AutoMemoryEnabled() bool { return s.autoMemory }

// TakeReply removes and returns the oldest reply recorded through the
// emission primitives, as a freeable root. Returns nil when no reply is
// pending.
func (s *Server) TakeReply() host.CallReply {
	rep := s.rec.take()
	if rep == nil {
		return nil
	}
	return s.registerRoot(rep)
}

// PendingReplies returns the number of recorded, untaken replies.
func (s *Server) PendingReplies() int { return s.rec.pending() }

func (s *Server) registerRoot(rep *Reply) *Reply {
	rep.srv = s
	rep.trackID = s.tracker.Acquire("reply")
	return rep
}

// Limited strips the optional capabilities from an API, leaving only the
// required surface. Used to exercise version-gated fallback paths.
func Limited(api host.API) host.API {
	return struct{ host.API }{api}
}

// --- host.API ---

func (s *Server) Call(cmd string, options string, args []host.String) host.CallReply {
	flags := options
	if i := strings.IndexByte(flags, 0); i >= 0 {
		flags = flags[:i]
	}
	// The base flag is mandatory; a malformed token fails the call.
	if !strings.ContainsRune(flags, 'v') {
		return nil
	}

	raw := make([][]byte, len(args))
	for i, a := range args {
		raw[i] = a.Bytes()
	}

	name := strings.ToLower(cmd)
	s.mu.Lock()
	s.currentCommand = name
	s.mu.Unlock()

	metrics.GetOrCreateCounter(fmt.Sprintf(`hosttest_commands_total{command=%q}`, name)).Inc()
	s.log.Debug("dispatch", zap.String("command", name), zap.Int("args", len(raw)), zap.String("flags", flags))

	rep := s.dispatch(name, raw, flags)
	if rep == nil {
		return nil
	}
	return s.registerRoot(rep)
}

func (s *Server) CreateString(value []byte) host.String {
	data := make([]byte, len(value))
	copy(data, value)
	return &ownedString{srv: s, data: data, id: s.tracker.Acquire("string")}
}

func (s *Server) OpenKey(name host.String, mode host.KeyMode) host.Key {
	return &keyHandle{
		srv:  s,
		name: string(name.Bytes()),
		mode: mode,
		id:   s.tracker.Acquire("key"),
	}
}

func (s *Server) Log(level host.LogLevel, message string) {
	switch level {
	case host.LogWarning:
		s.log.Warn(message)
	case host.LogNotice:
		s.log.Info(message)
	default:
		s.log.Debug(message)
	}
}

func (s *Server) emitted(rep *Reply) host.Status {
	metrics.GetOrCreateCounter("hosttest_reply_emissions_total").Inc()
	s.rec.emit(rep)
	return host.StatusOK
}

func (s *Server) ReplyWithLongLong(v int64) host.Status {
	return s.emitted(newIntegerReply(v))
}

func (s *Server) ReplyWithDouble(v float64) host.Status {
	return s.emitted(newDoubleReply(v))
}

func (s *Server) ReplyWithSimpleString(v string) host.Status {
	return s.emitted(&Reply{typ: host.ReplyString, data: []byte(v)})
}

func (s *Server) ReplyWithStringBuffer(b []byte) host.Status {
	data := make([]byte, len(b))
	copy(data, b)
	return s.emitted(newStringReply(data))
}

func (s *Server) ReplyWithString(v host.String) host.Status {
	return s.ReplyWithStringBuffer(v.Bytes())
}

func (s *Server) ReplyWithArray(length int) host.Status {
	metrics.GetOrCreateCounter("hosttest_reply_emissions_total").Inc()
	s.rec.open(&Reply{typ: host.ReplyArray}, length)
	return host.StatusOK
}

func (s *Server) ReplyWithMap(length int) host.Status {
	metrics.GetOrCreateCounter("hosttest_reply_emissions_total").Inc()
	s.rec.open(&Reply{typ: host.ReplyMap}, length*2)
	return host.StatusOK
}

func (s *Server) ReplyWithSet(length int) host.Status {
	metrics.GetOrCreateCounter("hosttest_reply_emissions_total").Inc()
	s.rec.open(&Reply{typ: host.ReplySet}, length)
	return host.StatusOK
}

func (s *Server) ReplyWithBool(v bool) host.Status {
	return s.emitted(newBoolReply(v))
}

func (s *Server) ReplyWithBigNumber(num string) host.Status {
	return s.emitted(newBigNumberReply(num))
}

func (s *Server) ReplyWithVerbatimString(format string, b []byte) host.Status {
	data := make([]byte, len(b))
	copy(data, b)
	return s.emitted(newVerbatimReply(format, data))
}

func (s *Server) ReplyWithNull() host.Status {
	return s.emitted(newNullReply())
}

func (s *Server) ReplyWithError(message string) host.Status {
	return s.emitted(newErrorReply(message))
}

func (s *Server) WrongArity() host.Status {
	s.mu.Lock()
	cmd := s.currentCommand
	s.mu.Unlock()
	return s.emitted(newErrorReply(fmt.Sprintf("ERR wrong number of arguments for '%s' command", cmd)))
}

func (s *Server) ContextFlags() host.ContextFlags { return s.flags }

func (s *Server) SetModuleOptions(opts host.ModuleOptions) { s.opts = opts }

func (s *Server) IsKeysPositionRequest() bool { return s.keysPosRequest }

func (s *Server) KeyAtPos(pos int) {
	s.keyPositions = append(s.keyPositions, pos)
}

func (s *Server) ReplicateVerbatim() { s.replicated++ }

func (s *Server) AutoMemory() { s.autoMemory = true }

func (s *Server) CurrentUserName() host.String {
	s.mu.Lock()
	name := s.currentUser
	s.mu.Unlock()
	return s.CreateString([]byte(name))
}

func (s *Server) AuthenticateClientWithACLUser(name string) host.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; !ok {
		return host.StatusErr
	}
	s.currentUser = name
	return host.StatusOK
}

func (s *Server) GetModuleUserFromUserName(name host.String) host.User {
	s.mu.Lock()
	perms, ok := s.users[string(name.Bytes())]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return &userHandle{srv: s, perms: perms, id: s.tracker.Acquire("user")}
}

func (s *Server) ACLCheckKeyPermission(user host.User, key host.String, perms host.ACLPermission) host.Status {
	u, ok := user.(*userHandle)
	if !ok {
		return host.StatusErr
	}
	if !u.perms.Has(perms) {
		return host.StatusErr
	}
	return host.StatusOK
}

// --- optional capabilities ---

// ServerVersion implements host.ServerVersionProvider with the packed
// 0x00MMmmpp encoding.
func (s *Server) ServerVersion() int {
	var major, minor, patch int
	fmt.Sscanf(s.version, "%d.%d.%d", &major, &minor, &patch)
	return major<<16 | minor<<8 | patch
}

// CurrentCommandName implements host.CommandNameProvider.
func (s *Server) CurrentCommandName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentCommand
}

// --- handles ---

type ownedString struct {
	srv  *Server
	data []byte
	id   uint64
}

func (o *ownedString) Bytes() []byte { return o.data }

func (o *ownedString) Free() {
	if err := o.srv.tracker.Release(o.id); err != nil {
		panic("hosttest: string " + err.Error())
	}
}

type userHandle struct {
	srv   *Server
	perms host.ACLPermission
	id    uint64
}

func (u *userHandle) Free() {
	if err := u.srv.tracker.Release(u.id); err != nil {
		panic("hosttest: user " + err.Error())
	}
}

type keyHandle struct {
	srv  *Server
	name string
	mode host.KeyMode
	id   uint64
}

func (k *keyHandle) Bytes() ([]byte, error) {
	if v, ok := k.srv.keys.Load(k.name); ok {
		return v, nil
	}
	if _, ok := k.srv.hashes.Load(k.name); ok {
		return nil, fmt.Errorf("key %q holds a non-string value", k.name)
	}
	if _, ok := k.srv.sets.Load(k.name); ok {
		return nil, fmt.Errorf("key %q holds a non-string value", k.name)
	}
	return nil, nil
}

func (k *keyHandle) Length() int {
	v, ok := k.srv.keys.Load(k.name)
	if !ok {
		return 0
	}
	return len(v)
}

func (k *keyHandle) IsEmpty() bool {
	if _, ok := k.srv.keys.Load(k.name); ok {
		return false
	}
	if _, ok := k.srv.hashes.Load(k.name); ok {
		return false
	}
	if _, ok := k.srv.sets.Load(k.name); ok {
		return false
	}
	return true
}

func (k *keyHandle) Write(value []byte) host.Status {
	if k.mode&host.KeyModeWrite == 0 {
		return host.StatusErr
	}
	data := make([]byte, len(value))
	copy(data, value)
	k.srv.keys.Store(k.name, data)
	return host.StatusOK
}

func (k *keyHandle) Delete() host.Status {
	if k.mode&host.KeyModeWrite == 0 {
		return host.StatusErr
	}
	k.srv.keys.Delete(k.name)
	k.srv.hashes.Delete(k.name)
	k.srv.sets.Delete(k.name)
	return host.StatusOK
}

func (k *keyHandle) Free() {
	if err := k.srv.tracker.Release(k.id); err != nil {
		panic("hosttest: key " + err.Error())
	}
}

package hosttest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nebulaiq/redismodule-go/host"
)

// dispatch executes one built-in command and returns its reply tree, or
// nil when the call itself fails (DEBUG FAILCALL). Command errors come
// back as error replies, the way the real call surface reports them.
func (s *Server) dispatch(cmd string, args [][]byte, flags string) *Reply {
	noWrites := strings.ContainsRune(flags, 'W')
	resp3 := strings.ContainsRune(flags, '3')

	if isWriteCommand(cmd) {
		if noWrites {
			return newErrorReply("ERR write commands are not allowed")
		}
		if strings.ContainsRune(flags, 'M') && s.flags.Has(host.CtxOOM) {
			return newErrorReply("OOM command not allowed when used memory > 'maxmemory'.")
		}
	}

	switch cmd {
	case "ping":
		switch len(args) {
		case 0:
			return newStringReply([]byte("PONG"))
		case 1:
			return newStringReply(args[0])
		default:
			return arityError(cmd)
		}

	case "echo":
		if len(args) != 1 {
			return arityError(cmd)
		}
		return newStringReply(args[0])

	case "set":
		if len(args) != 2 {
			return arityError(cmd)
		}
		value := make([]byte, len(args[1]))
		copy(value, args[1])
		s.keys.Store(string(args[0]), value)
		return newStringReply([]byte("OK"))

	case "get":
		if len(args) != 1 {
			return arityError(cmd)
		}
		v, ok := s.keys.Load(string(args[0]))
		if !ok {
			return newNullReply()
		}
		return newStringReply(v)

	case "del":
		if len(args) == 0 {
			return arityError(cmd)
		}
		deleted := int64(0)
		for _, a := range args {
			name := string(a)
			if _, ok := s.keys.LoadAndDelete(name); ok {
				deleted++
				continue
			}
			if _, ok := s.hashes.LoadAndDelete(name); ok {
				deleted++
				continue
			}
			if _, ok := s.sets.LoadAndDelete(name); ok {
				deleted++
			}
		}
		return newIntegerReply(deleted)

	case "exists":
		if len(args) == 0 {
			return arityError(cmd)
		}
		found := int64(0)
		for _, a := range args {
			name := string(a)
			if _, ok := s.keys.Load(name); ok {
				found++
			} else if _, ok := s.hashes.Load(name); ok {
				found++
			} else if _, ok := s.sets.Load(name); ok {
				found++
			}
		}
		return newIntegerReply(found)

	case "incr":
		if len(args) != 1 {
			return arityError(cmd)
		}
		name := string(args[0])
		cur := int64(0)
		if v, ok := s.keys.Load(name); ok {
			parsed, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return newErrorReply("ERR value is not an integer or out of range")
			}
			cur = parsed
		}
		cur++
		s.keys.Store(name, []byte(strconv.FormatInt(cur, 10)))
		return newIntegerReply(cur)

	case "hset":
		if len(args) < 3 || len(args)%2 != 1 {
			return arityError(cmd)
		}
		name := string(args[0])
		s.mu.Lock()
		h, ok := s.hashes.Load(name)
		if !ok {
			h = make(map[string]string)
			s.hashes.Store(name, h)
		}
		added := int64(0)
		for i := 1; i+1 < len(args); i += 2 {
			field := string(args[i])
			if _, exists := h[field]; !exists {
				added++
			}
			h[field] = string(args[i+1])
		}
		s.mu.Unlock()
		return newIntegerReply(added)

	case "hgetall":
		if len(args) != 1 {
			return arityError(cmd)
		}
		s.mu.Lock()
		h, _ := s.hashes.Load(string(args[0]))
		fields := make([]string, 0, len(h))
		for f := range h {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		keys := make([]*Reply, 0, len(fields))
		vals := make([]*Reply, 0, len(fields))
		for _, f := range fields {
			keys = append(keys, newStringReply([]byte(f)))
			vals = append(vals, newStringReply([]byte(h[f])))
		}
		s.mu.Unlock()
		if resp3 {
			return newMapReply(keys, vals)
		}
		flat := make([]*Reply, 0, len(keys)*2)
		for i := range keys {
			flat = append(flat, keys[i], vals[i])
		}
		return newArrayReply(flat...)

	case "sadd":
		if len(args) < 2 {
			return arityError(cmd)
		}
		name := string(args[0])
		s.mu.Lock()
		set, ok := s.sets.Load(name)
		if !ok {
			set = make(map[string]struct{})
			s.sets.Store(name, set)
		}
		added := int64(0)
		for _, m := range args[1:] {
			member := string(m)
			if _, exists := set[member]; !exists {
				set[member] = struct{}{}
				added++
			}
		}
		s.mu.Unlock()
		return newIntegerReply(added)

	case "smembers":
		if len(args) != 1 {
			return arityError(cmd)
		}
		s.mu.Lock()
		set, _ := s.sets.Load(string(args[0]))
		members := make([]string, 0, len(set))
		for m := range set {
			members = append(members, m)
		}
		s.mu.Unlock()
		sort.Strings(members)
		elems := make([]*Reply, 0, len(members))
		for _, m := range members {
			elems = append(elems, newStringReply([]byte(m)))
		}
		if resp3 {
			return newSetReply(elems...)
		}
		return newArrayReply(elems...)

	case "info":
		if len(args) > 1 {
			return arityError(cmd)
		}
		section := ""
		if len(args) == 1 {
			section = strings.ToLower(string(args[0]))
		}
		return newStringReply([]byte(s.buildInfo(section)))

	case "debug":
		return s.debugCommand(args)

	default:
		return newErrorReply(fmt.Sprintf("ERR unknown command '%s'", cmd))
	}
}

// debugCommand produces the reply shapes that have no natural built-in
// command, so tests can exercise every decode rule.
func (s *Server) debugCommand(args [][]byte) *Reply {
	if len(args) == 0 {
		return arityError("debug")
	}
	switch strings.ToLower(string(args[0])) {
	case "bool":
		if len(args) != 2 {
			return arityError("debug")
		}
		return newBoolReply(string(args[1]) == "true" || string(args[1]) == "1")
	case "double":
		if len(args) != 2 {
			return arityError("debug")
		}
		f, err := strconv.ParseFloat(string(args[1]), 64)
		if err != nil {
			return newErrorReply("ERR value is not a valid float")
		}
		return newDoubleReply(f)
	case "bignum":
		if len(args) != 2 {
			return arityError("debug")
		}
		return newBigNumberReply(string(args[1]))
	case "verbatim":
		if len(args) != 3 || len(args[1]) != 3 {
			return arityError("debug")
		}
		data := make([]byte, len(args[2]))
		copy(data, args[2])
		return newVerbatimReply(string(args[1]), data)
	case "null":
		return newNullReply()
	case "error":
		if len(args) != 2 {
			return arityError("debug")
		}
		return newErrorReply(string(args[1]))
	case "failcall":
		// Emulates a call the server cannot even start.
		return nil
	default:
		return newErrorReply(fmt.Sprintf("ERR unknown DEBUG subcommand '%s'", args[0]))
	}
}

func arityError(cmd string) *Reply {
	return newErrorReply(fmt.Sprintf("ERR wrong number of arguments for '%s' command", cmd))
}

func isWriteCommand(cmd string) bool {
	switch cmd {
	case "set", "del", "incr", "hset", "sadd":
		return true
	}
	return false
}

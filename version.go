package redismodule

import (
	"regexp"
	"strconv"

	"github.com/coreos/go-semver/semver"

	"github.com/nebulaiq/redismodule-go/host"
)

// Version is a server version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

func (v Version) semver() semver.Version {
	return semver.Version{
		Major: int64(v.Major),
		Minor: int64(v.Minor),
		Patch: int64(v.Patch),
	}
}

// Compare returns -1, 0 or 1 ordering v against o.
func (v Version) Compare(o Version) int {
	a, b := v.semver(), o.semver()
	return a.Compare(b)
}

// versionFromPacked decodes the server's packed version encoding
// (0x00MMmmpp).
func versionFromPacked(packed int) Version {
	return Version{
		Major: (packed >> 16) & 0xFF,
		Minor: (packed >> 8) & 0xFF,
		Patch: packed & 0xFF,
	}
}

var versionRe = regexp.MustCompile(`(?m)\bredis_version:([0-9]+)\.([0-9]+)\.([0-9]+)\b`)

// VersionFromInfo extracts the server version from a textual "info server"
// reply.
func VersionFromInfo(info Value) (Version, error) {
	var text string
	switch info.Kind {
	case KindSimpleString, KindBulkString:
		text = info.Str
	case KindStringBuffer:
		text = string(info.Bytes)
	default:
		return Version{}, errNoVersion
	}

	m := versionRe.FindStringSubmatch(text)
	if m == nil {
		return Version{}, errNoVersion
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// ServerVersion returns the server version, preferring the direct version
// capability and falling back to invoking "info server" and parsing its
// reply.
func (c *Context) ServerVersion() (Version, error) {
	return c.serverVersion(false)
}

func (c *Context) serverVersion(forceInfoCall bool) (Version, error) {
	if p, ok := c.api.(host.ServerVersionProvider); ok && !forceInfoCall {
		return versionFromPacked(p.ServerVersion()), nil
	}

	info, err := c.Call("info", "server")
	if err != nil {
		return Version{}, errInfoCallFailed
	}
	return VersionFromInfo(info)
}

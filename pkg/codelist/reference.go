package codelist

import (
	"regexp"
	"strconv"
)

const (
	referencePrefix    = "lib"
	referenceDelimiter = "**"
)

// LatestVersion addresses whatever version of the list is newest at runtime.
const LatestVersion Version = "_latest"

var referencePattern = regexp.MustCompile(`^lib\*\*([^*]+)\*\*([^*]+)\*\*(\d+|_latest)$`)

// Version is either a decimal number or LatestVersion.
type Version string

// NumberedVersion returns the version string for n.
func NumberedVersion(n int) Version {
	return Version(strconv.Itoa(n))
}

// IsLatest reports whether the version tracks the newest release.
func (v Version) IsLatest() bool {
	return v == LatestVersion
}

// Number returns the numeric version. It reports false for LatestVersion and
// for values that are not plain digit strings.
func (v Version) Number() (int, bool) {
	if v == "" || v.IsLatest() {
		return 0, false
	}
	for _, ch := range v {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Reference identifies a published code list.
//
// Org and Name must not contain '*'. Encode performs no escaping, so values
// violating this produce identifiers that do not decode back.
type Reference struct {
	Org     string  `json:"orgName" yaml:"orgName"`
	Name    string  `json:"codeListName" yaml:"codeListName"`
	Version Version `json:"version" yaml:"version"`
}

// Encode builds the canonical reference string for ref.
func Encode(ref Reference) string {
	return referencePrefix + referenceDelimiter + ref.Org +
		referenceDelimiter + ref.Name +
		referenceDelimiter + string(ref.Version)
}

// String returns the canonical wire format. For any reference accepted by
// Decode, Decode(ref.String()) returns an equal Reference.
func (ref Reference) String() string {
	return Encode(ref)
}

// WithVersion returns a copy of ref pinned to version.
func (ref Reference) WithVersion(version Version) Reference {
	ref.Version = version
	return ref
}

// Latest returns a copy of ref tracking the newest version.
func (ref Reference) Latest() Reference {
	return ref.WithVersion(LatestVersion)
}

// Decode parses a canonical reference string. The whole input must match the
// grammar; partial matches report false.
func Decode(id string) (Reference, bool) {
	match := referencePattern.FindStringSubmatch(id)
	if match == nil {
		return Reference{}, false
	}
	return Reference{
		Org:     match[1],
		Name:    match[2],
		Version: Version(match[3]),
	}, true
}

// IsReference reports whether id is a well formed published reference.
func IsReference(id string) bool {
	_, ok := Decode(id)
	return ok
}

// IsReferenceOwnedBy reports whether id decodes to a reference published by
// org.
func IsReferenceOwnedBy(id, org string) bool {
	ref, ok := Decode(id)
	return ok && ref.Org == org
}

// LooksLikeReference reports whether id carries the reference prefix, whether
// or not the remainder is well formed. Lint uses it to flag identifiers that
// were meant to be published references but cannot be decoded.
func LooksLikeReference(id string) bool {
	prefix := referencePrefix + referenceDelimiter
	return len(id) >= len(prefix) && id[:len(prefix)] == prefix
}

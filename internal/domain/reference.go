package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExternalTriple addresses one item in the federated catalog.
type ExternalTriple struct {
	HrUID    string
	Language string
	Version  int
}

func (t ExternalTriple) String() string {
	return fmt.Sprintf("%s/%s/%d", t.HrUID, t.Language, t.Version)
}

// ContentReference is a tagged union: exactly one of the local id or the
// external triple is populated. The fields are unexported so the only way to
// build one is through LocalRef / ExternalRef, which makes a mixed or empty
// reference unrepresentable outside this package.
type ContentReference struct {
	local    *uuid.UUID
	external *ExternalTriple
}

func LocalRef(objectID uuid.UUID) ContentReference {
	id := objectID
	return ContentReference{local: &id}
}

func ExternalRef(hruid, language string, version int) ContentReference {
	return ContentReference{external: &ExternalTriple{
		HrUID:    strings.TrimSpace(hruid),
		Language: strings.TrimSpace(language),
		Version:  version,
	}}
}

func (r ContentReference) IsExternal() bool { return r.external != nil }

func (r ContentReference) LocalID() (uuid.UUID, bool) {
	if r.local == nil {
		return uuid.Nil, false
	}
	return *r.local, true
}

func (r ContentReference) External() (ExternalTriple, bool) {
	if r.external == nil {
		return ExternalTriple{}, false
	}
	return *r.external, true
}

// CheckWellFormed reports InvalidReference for a descriptor that cannot
// address anything: the zero value, a nil local id, or an external triple
// with a missing field.
func (r ContentReference) CheckWellFormed(op string) error {
	switch {
	case r.local == nil && r.external == nil:
		return InvalidReference(op, "reference has neither a local id nor an external triple")
	case r.local != nil && *r.local == uuid.Nil:
		return InvalidReference(op, "local reference has a nil object id")
	case r.external != nil && r.external.HrUID == "":
		return InvalidReference(op, "external reference is missing hruid")
	case r.external != nil && r.external.Language == "":
		return InvalidReference(op, "external reference is missing language")
	case r.external != nil && r.external.Version <= 0:
		return InvalidReference(op, "external reference is missing version")
	default:
		return nil
	}
}

func (r ContentReference) String() string {
	if r.external != nil {
		return "external:" + r.external.String()
	}
	if r.local != nil {
		return "local:" + r.local.String()
	}
	return "empty"
}

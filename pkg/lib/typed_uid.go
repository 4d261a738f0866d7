package lib

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TypedUID is a structured ID format for easy resource type extraction.
// Example: "redditsubreddit:golang:top".
type TypedUID struct {
	Typ         string
	Identifiers []string
}

func NewTypedUID(sourceType string, identifiers ...string) TypedUID {
	return TypedUID{
		Typ:         sourceType,
		Identifiers: identifiers,
	}
}

func NewTypedUIDFromString(s string) (TypedUID, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] == "" {
		return TypedUID{}, fmt.Errorf("invalid source UID: %s", s)
	}
	return NewTypedUID(parts[0], parts[1:]...), nil
}

func (s TypedUID) Type() string {
	return s.Typ
}

func (s TypedUID) String() string {
	ids := make([]string, len(s.Identifiers))
	for i, id := range s.Identifiers {
		// Slashes would clash with URL path segments.
		ids[i] = strings.ReplaceAll(id, "/", ":")
	}
	return fmt.Sprintf("%s:%s", s.Typ, strings.Join(ids, ":"))
}

func (s TypedUID) Equals(other TypedUID) bool {
	return s.String() == other.String()
}

func (s TypedUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TypedUID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	uid, err := NewTypedUIDFromString(str)
	if err != nil {
		return fmt.Errorf("new typed UID from string: %w", err)
	}
	*s = uid
	return nil
}

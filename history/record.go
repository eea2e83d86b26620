package history

import (
	"fmt"

	"github.com/dshills/glint/document"
)

// Kind categorizes a recorded operation.
type Kind uint8

const (
	KindInsert Kind = iota // text was inserted
	KindDelete             // text was deleted
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Record is one document operation together with everything needed to
// reverse it: the affected region and the literal text involved.
type Record struct {
	Kind   Kind
	Region document.Region
	Text   string
}

// String returns a human-readable representation of the record.
func (r Record) String() string {
	return fmt.Sprintf("%s %s %q", r.Kind, r.Region, r.Text)
}

// Invert returns the record that undoes this one.
func (r Record) Invert() Record {
	switch r.Kind {
	case KindInsert:
		return Record{Kind: KindDelete, Region: r.Region, Text: r.Text}
	case KindDelete:
		return Record{Kind: KindInsert, Region: r.Region, Text: r.Text}
	default:
		return r
	}
}

// apply replays the record through the ordinary document mutation path.
func (r Record) apply(d *document.Document) error {
	switch r.Kind {
	case KindInsert:
		_, err := d.Insert(r.Region.Start.Line, r.Region.Start.Col, r.Text)
		return err
	case KindDelete:
		_, err := d.Delete(r.Region.Start.Line, r.Region.Start.Col, r.Region.End.Line, r.Region.End.Col)
		return err
	default:
		return fmt.Errorf("apply record: unknown kind %d", r.Kind)
	}
}

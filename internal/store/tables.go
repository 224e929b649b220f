package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/vistafly/interviewme/ent/schema"
)

const (
	tableSessions      = "interview_sessions"
	tableAnswerEvents  = "answer_events"
	tableSessionEvents = "session_events"
)

var (
	// InterviewSessionsTable holds one row per saved session.
	InterviewSessionsTable = tableFor(tableSessions, "InterviewSession", entschema.InterviewSession{})

	// AnswerEventsTable holds one row per graded answer, retries included.
	AnswerEventsTable = tableFor(tableAnswerEvents, "AnswerEvent", entschema.AnswerEvent{})

	// SessionEventsTable records session lifecycle transitions.
	SessionEventsTable = tableFor(tableSessionEvents, "SessionEvent", entschema.SessionEvent{})

	// Tables holds every table the store migrates.
	Tables = []*schema.Table{
		InterviewSessionsTable,
		AnswerEventsTable,
		SessionEventsTable,
	}
)

// tableFor builds the migration table for an ent schema: an auto-increment
// id, the mixin fields, then the schema's own fields, with indexes named
// the way ent's generator names them.
func tableFor(name, typeName string, s ent.Interface) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			panic(fmt.Sprintf("store: %s.%s: %v", typeName, d.Name, d.Err))
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		})
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := t.Column(fname)
			if !ok {
				panic(fmt.Sprintf("store: %s index on unknown field %q", typeName, fname))
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    strings.ToLower(typeName) + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t
}

package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// InterviewSession is one finished interview with its full report.
type InterviewSession struct {
	ent.Schema
}

func (InterviewSession) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (InterviewSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Unique().
			Immutable(),
		field.String("user_id").
			Optional().
			Nillable(),
		field.String("company"),
		field.String("job_title"),
		field.Int("overall_pct").
			Range(0, 100),
		field.String("overall_grade").
			NotEmpty(),
		field.Int("answered").
			NonNegative(),
		field.Int("total").
			Positive(),
		field.JSON("data", map[string]any{}).
			Comment("Saved report including every answered question"),
	}
}

func (InterviewSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}

package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one graded answer. Retries produce additional events
// for the same question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("question_index").
			NonNegative().
			Comment("Position of the question in the session"),
		field.String("question_text").
			NotEmpty().
			Comment("The question asked"),
		field.Text("answer_text").
			Comment("Final transcript, may be empty"),
		field.Int("elapsed_secs").
			NonNegative().
			Comment("Seconds spent answering"),
		field.Int("word_count").
			NonNegative(),
		field.Int("hits").
			NonNegative().
			Comment("Distinct key phrases found"),
		field.Int("total_keys").
			NonNegative(),
		field.Int("percentage").
			Range(0, 100),
		field.String("grade").
			NotEmpty().
			Comment("Letter grade"),
		field.Bool("forced").
			Comment("Whether the countdown ended the answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}

package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/nissyi-gh/taskroom/internal/model"
)

type fakeCreator struct {
	created []model.NewTask
	failOn  string
}

func (f *fakeCreator) CreateTask(_ context.Context, _ model.Session, t model.NewTask) (model.Task, error) {
	if t.Title == f.failOn {
		return model.Task{}, errors.New("boom")
	}
	f.created = append(f.created, t)
	return model.Task{ID: len(f.created), Title: t.Title}, nil
}

const doc = `
tasks:
  - title: "Write report"
    description: "Quarterly numbers"
    priority: high
    due_date: "2024-12-31"
  - title: "Buy milk"
    priority: urgent
`

func TestImport(t *testing.T) {
	is := is.New(t)
	f := &fakeCreator{}
	sess := model.NewSession("http://x", "abc", "alice")

	n, err := Import(context.Background(), f, sess, doc)
	is.NoErr(err)
	is.Equal(n, 2)
	is.Equal(f.created[0].Title, "Write report")
	is.Equal(f.created[0].Priority, "high")
	is.Equal(*f.created[0].DueDate, "2024-12-31")
	is.Equal(f.created[1].Priority, "medium") // unknown priorities are normalised
	is.Equal(f.created[1].DueDate, nil)
}

func TestImport_Errors(t *testing.T) {
	sess := model.NewSession("http://x", "abc", "alice")
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "tasks: ["},
		{"empty", "tasks: []"},
		{"missing title", "tasks:\n  - description: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			f := &fakeCreator{}
			n, err := Import(context.Background(), f, sess, tt.doc)
			is.True(err != nil)
			is.Equal(n, 0)
			is.Equal(len(f.created), 0) // nothing is sent for an invalid document
		})
	}
}

func TestImport_StopsAtFailure(t *testing.T) {
	is := is.New(t)
	f := &fakeCreator{failOn: "Buy milk"}
	n, err := Import(context.Background(), f, model.NewSession("http://x", "abc", "alice"), doc)
	is.True(err != nil)
	is.Equal(n, 1)
}

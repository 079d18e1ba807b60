package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nissyi-gh/taskroom/internal/model"
	"gopkg.in/yaml.v3"
)

// TaskCreator creates tasks in a room.
type TaskCreator interface {
	CreateTask(ctx context.Context, sess model.Session, t model.NewTask) (model.Task, error)
}

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	DueDate     string `yaml:"due_date,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML document and creates its tasks in the session's room,
// stopping at the first failure. Returns the number of tasks created.
func Import(ctx context.Context, c TaskCreator, sess model.Session, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}
	for i, yt := range input.Tasks {
		if strings.TrimSpace(yt.Title) == "" {
			return 0, fmt.Errorf("task %d: title is required", i+1)
		}
	}

	count := 0
	for _, yt := range input.Tasks {
		if _, err := c.CreateTask(ctx, sess, yt.newTask()); err != nil {
			return count, fmt.Errorf("add task %q: %w", yt.Title, err)
		}
		count++
	}
	return count, nil
}

func (yt YAMLTask) newTask() model.NewTask {
	t := model.NewTask{
		Title:       strings.TrimSpace(yt.Title),
		Description: yt.Description,
		Priority:    string(model.NormalizePriority(yt.Priority)),
	}
	if yt.DueDate != "" {
		d := yt.DueDate
		t.DueDate = &d
	}
	return t
}

package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/boardchart/internal/errors"
)

// Field aliases accepted in JSON task lists. Board exports disagree on casing.
var (
	idKeys       = []string{"id", "_id", "taskId", "task_id"}
	nameKeys     = []string{"name", "title"}
	parentKeys   = []string{"parentId", "parent_id", "parentTaskId", "parent"}
	statusKeys   = []string{"status", "state"}
	progressKeys = []string{"progress", "percentComplete", "percent_complete"}
	startKeys    = []string{"startDate", "start_date", "start"}
	dueKeys      = []string{"dueDate", "due_date", "deadline", "endDate", "end_date"}
)

// LoadFile reads a task list from a JSON or YAML file, chosen by extension
// (.yaml/.yml are YAML, everything else JSON).
func LoadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read task file %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		tasks, err := ParseYAML(data)
		if err != nil {
			return nil, wrapParseError(path, "YAML", err)
		}
		return tasks, nil
	default:
		tasks, err := ParseJSON(data)
		if err != nil {
			return nil, wrapParseError(path, "JSON", err)
		}
		return tasks, nil
	}
}

func wrapParseError(path, format string, err error) error {
	// Empty and malformed input keep their own codes.
	if errors.HasCode(err, errors.ErrCodeEmptyInput) || errors.HasCode(err, errors.ErrCodeMalformedTask) {
		return err
	}
	return errors.NewFileUnmarshalError(path, format, err)
}

// ParseJSON decodes a JSON array of task objects. A payload that is valid JSON
// but not an array yields an EmptyInputError. Unparseable date fields yield a
// MalformedTaskError naming the task.
func ParseJSON(data []byte) ([]Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeFileUnmarshal, "task list is not valid JSON").
			WithSuggestion("Export the board again; the payload may be truncated")
	}
	root := gjson.ParseBytes(data)
	// Accept {"tasks": [...]} envelopes as produced by the board API.
	if root.IsObject() {
		if inner := root.Get("tasks"); inner.IsArray() {
			root = inner
		}
	}
	if !root.IsArray() {
		return nil, errors.NewEmptyInputError("input is not a list of tasks")
	}

	var (
		tasks   []Task
		loadErr error
	)
	index := 0
	root.ForEach(func(_, item gjson.Result) bool {
		t, err := taskFromJSON(item, index)
		if err != nil {
			loadErr = err
			return false
		}
		tasks = append(tasks, t)
		index++
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return tasks, nil
}

func taskFromJSON(item gjson.Result, index int) (Task, error) {
	if !item.IsObject() {
		return Task{}, errors.NewMalformedTaskError("", fmt.Sprintf("entry %d is not an object", index))
	}

	t := Task{
		ID:       firstString(item, idKeys),
		Name:     firstString(item, nameKeys),
		ParentID: firstString(item, parentKeys),
		Status:   Status(firstString(item, statusKeys)),
	}
	if p := first(item, progressKeys); p.Exists() {
		t.Progress = int(p.Int())
	}

	var err error
	if t.StartDate, err = dateField(item, startKeys); err != nil {
		return Task{}, errors.NewMalformedTaskError(t.ID, fmt.Sprintf("start date: %v", err))
	}
	if t.DueDate, err = dateField(item, dueKeys); err != nil {
		return Task{}, errors.NewMalformedTaskError(t.ID, fmt.Sprintf("due date: %v", err))
	}
	return t, nil
}

func first(item gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		if r := item.Get(k); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

// firstString reads a scalar field; numeric ids are kept in their JSON text form.
func firstString(item gjson.Result, keys []string) string {
	r := first(item, keys)
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	case gjson.JSON:
		// {"parent": {"id": "..."}} style references
		if id := first(r, idKeys); id.Exists() {
			return id.String()
		}
		return ""
	default:
		return ""
	}
}

func dateField(item gjson.Result, keys []string) (*Date, error) {
	r := first(item, keys)
	if !r.Exists() || r.String() == "" {
		return nil, nil
	}
	d, err := ParseDate(r.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseYAML decodes a YAML sequence of tasks using the snake_case keys of Task.
func ParseYAML(data []byte) ([]Task, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, errors.NewEmptyInputError("input is empty")
	}
	doc := node.Content[0]
	if doc.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(doc.Content); i += 2 {
			if doc.Content[i].Value == "tasks" {
				doc = doc.Content[i+1]
				break
			}
		}
	}
	if doc.Kind != yaml.SequenceNode {
		return nil, errors.NewEmptyInputError("input is not a list of tasks")
	}

	var tasks []Task
	if err := doc.Decode(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

package core

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pkg/errors"
)

type NoteAttribute struct {
	Title string `yaml:"title" json:"title" toml:"title"`
}

var (
	checklistItem = regexp.MustCompile(`^\s*[-*+]\s+\[([ xX])\]\s+(.*)$`)
	heading       = regexp.MustCompile(`^#\s+(.*)$`)
)

// ParseNoteMarkdown reads a note from markdown. The title comes from the
// front matter, or the first level-one heading when the front matter has
// none. Every checklist line becomes a todo.
func ParseNoteMarkdown(r io.Reader) (string, []Todo, error) {
	var attr NoteAttribute

	rest, err := frontmatter.Parse(r, &attr)
	if err != nil {
		return "", nil, errors.Wrap(err, "parse front matter")
	}

	title := attr.Title
	todos := []Todo{}

	sc := bufio.NewScanner(bytes.NewReader(rest))
	for sc.Scan() {
		line := sc.Text()

		if m := checklistItem.FindStringSubmatch(line); m != nil {
			todos = append(todos, Todo{
				Text: strings.TrimSpace(m[2]),
				Done: m[1] != " ",
			})
			continue
		}

		if title == "" {
			if m := heading.FindStringSubmatch(line); m != nil {
				title = m[1]
			}
		}
	}

	if err := sc.Err(); err != nil {
		return "", nil, errors.Wrap(err, "read markdown")
	}

	title = SanitizeTitle(title)
	if title == "" {
		return "", nil, errors.New("note has no title")
	}

	return title, todos, nil
}

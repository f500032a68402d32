package docs_test

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/investpro/cmd"
	"github.com/etnz/investpro/docs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// TestReadme checks that readme.md lists exactly the existing topics.
func TestReadme(t *testing.T) {
	readme, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("Failed to open readme.md: %v", err)
	}
	defer readme.Close()

	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	listed := make(map[string]bool)
	scanner := bufio.NewScanner(readme)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed[strings.TrimSpace(m[1])] = true
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading readme.md: %v", err)
	}

	topics, err := docs.GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error: %v", err)
	}
	for _, topic := range topics {
		if !listed[topic] {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
		delete(listed, topic)
	}
	for topic := range listed {
		t.Errorf("readme.md lists %q but %s.md does not exist", topic, topic)
	}
}

// TestExamples checks that every command shown in a console block exists.
func TestExamples(t *testing.T) {
	known := make(map[string]bool)
	for _, cmds := range cmd.Commands() {
		for _, c := range cmds {
			known[c.Name()] = true
		}
	}

	topics, err := docs.GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error: %v", err)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	for _, topic := range topics {
		content, err := docs.GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q) error: %v", topic, err)
		}
		source := []byte(content)
		doc := md.Parser().Parse(text.NewReader(source))

		if h, ok := doc.FirstChild().(*ast.Heading); !ok || h.Level != 1 {
			t.Errorf("%s.md does not start with a title", topic)
		}

		err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			block, ok := n.(*ast.FencedCodeBlock)
			if !entering || !ok || string(block.Language(source)) != "console" {
				return ast.WalkContinue, nil
			}
			lines := block.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				line := strings.TrimSpace(string(seg.Value(source)))
				if !strings.HasPrefix(line, "ipro ") {
					continue
				}
				if name := commandOf(line); !known[name] {
					t.Errorf("%s.md: %q uses unknown command %q", topic, line, name)
				}
			}
			return ast.WalkContinue, nil
		})
		if err != nil {
			t.Fatalf("walking %s.md: %v", topic, err)
		}
	}
}

// commandOf returns the subcommand of an ipro command line, skipping the
// global flags, all of which but -v and -plain take a value.
func commandOf(line string) string {
	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			return a
		}
		if a != "-v" && a != "-plain" && !strings.Contains(a, "=") {
			i++
		}
	}
	return ""
}

func TestGetTopics(t *testing.T) {
	all, err := docs.GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error: %v", err)
	}
	for _, title := range []string{"# Accounts", "# Orders", "# Report"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopics(*) does not contain %q", title)
		}
	}
	if _, err := docs.GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) succeeded, want an error")
	}
}

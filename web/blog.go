package web

import (
	"bufio"
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Post is a rendered blog article
type Post struct {
	Slug      string
	Title     string
	Summary   string
	Published time.Time
	HTML      template.HTML
}

// Blog holds every post, newest first
type Blog struct {
	posts  []Post
	bySlug map[string]int
}

// LoadBlog renders the embedded markdown posts under content/blog
func LoadBlog() (*Blog, error) {
	sub, err := fs.Sub(files, "content/blog")
	if err != nil {
		return nil, err
	}
	return ParseBlog(sub)
}

// ParseBlog renders every *.md file in fsys. Each file starts with
// "key: value" header lines (title, date, summary) ended by a "---" line.
func ParseBlog(fsys fs.FS) (*Blog, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))

	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}

	b := &Blog{bySlug: make(map[string]int)}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		post, body, err := parseHeader(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		post.Slug = strings.TrimSuffix(path.Base(name), ".md")

		var buf bytes.Buffer
		if err := md.Convert(body, &buf); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		post.HTML = template.HTML(buf.String())
		b.posts = append(b.posts, post)
	}

	sort.SliceStable(b.posts, func(i, j int) bool {
		return b.posts[i].Published.After(b.posts[j].Published)
	})
	for i, p := range b.posts {
		b.bySlug[p.Slug] = i
	}
	return b, nil
}

func parseHeader(raw []byte) (Post, []byte, error) {
	var post Post
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	consumed := 0
	for scanner.Scan() {
		line := scanner.Text()
		consumed += len(line) + 1
		if strings.TrimSpace(line) == "---" {
			if post.Title == "" {
				return post, nil, fmt.Errorf("missing title")
			}
			if consumed > len(raw) {
				consumed = len(raw)
			}
			return post, raw[consumed:], nil
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "title":
			post.Title = value
		case "summary":
			post.Summary = value
		case "date":
			t, err := time.Parse("2006-01-02", value)
			if err != nil {
				return post, nil, fmt.Errorf("invalid date %q: %w", value, err)
			}
			post.Published = t
		}
	}
	return post, nil, fmt.Errorf("missing header terminator")
}

// Posts returns every post, newest first
func (b *Blog) Posts() []Post {
	out := make([]Post, len(b.posts))
	copy(out, b.posts)
	return out
}

// Post looks up a post by slug
func (b *Blog) Post(slug string) (Post, bool) {
	i, ok := b.bySlug[slug]
	if !ok {
		return Post{}, false
	}
	return b.posts[i], true
}

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"papernet/services"
)

// FormError names the form field that could not be read.
type FormError struct {
	Field string
	Err   error
}

func (e *FormError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("form field %q is required", e.Field)
	}
	return fmt.Sprintf("form field %q: %v", e.Field, e.Err)
}

func (e *FormError) Unwrap() error { return e.Err }

// parseAddPaperForm reads the POST /add form. name, group and citations are required;
// author is optional and links is parsed best-effort by parseLinkIDs.
func parseAddPaperForm(c *gin.Context) (services.AddPaperCommand, error) {
	var cmd services.AddPaperCommand

	name, ok := c.GetPostForm("name")
	if !ok {
		return cmd, &FormError{Field: "name"}
	}
	group, ok := c.GetPostForm("group")
	if !ok {
		return cmd, &FormError{Field: "group"}
	}
	rawCitations, ok := c.GetPostForm("citations")
	if !ok {
		return cmd, &FormError{Field: "citations"}
	}
	citations, err := strconv.Atoi(strings.TrimSpace(rawCitations))
	if err != nil {
		return cmd, &FormError{Field: "citations", Err: err}
	}

	cmd.Name = name
	cmd.Group = group
	cmd.Citations = citations
	if author, ok := c.GetPostForm("author"); ok {
		cmd.Author = &author
	}
	cmd.LinkIDs = parseLinkIDs(c.PostForm("links"))
	return cmd, nil
}

// parseLinkIDs splits a comma-separated id list. A single non-numeric token
// discards the whole list; numbers outside int64 can never resolve and are skipped.
func parseLinkIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			continue
		}
		if err != nil {
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

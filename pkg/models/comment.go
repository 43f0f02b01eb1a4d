package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/danielolaszy/jiramodel/pkg/jiratime"
)

// Comment is a comment on a JIRA issue.
// See https://docs.atlassian.com/jira/REST/latest/#api/2/issue/{issueIdOrKey}/comment
type Comment struct {
	BaseProperties

	// Author is who created the comment
	Author User

	// Body is the comment text
	Body string

	// Created is when the comment was created
	Created jiratime.Timestamp

	// UpdateAuthor is who last updated the comment
	UpdateAuthor User

	// Updated is when the comment was last updated
	Updated jiratime.Timestamp

	// Visibility restricts who can see the comment; nil when public
	Visibility *Visibility
}

// commentField maps one wire name to its Comment field.
type commentField struct {
	wire   string
	decode func(c *Comment, raw json.RawMessage, codec *jiratime.Codec) error
	// encode returns nil to omit the field.
	encode func(c *Comment, codec *jiratime.Codec) (json.RawMessage, error)
}

var commentFields = []commentField{
	{
		wire: "id",
		decode: func(c *Comment, raw json.RawMessage, _ *jiratime.Codec) (err error) {
			c.ID, err = parseID(raw)
			return err
		},
		encode: func(c *Comment, _ *jiratime.Codec) (json.RawMessage, error) {
			if c.ID == 0 {
				return nil, nil
			}
			return formatID(c.ID), nil
		},
	},
	{
		wire: "self",
		decode: func(c *Comment, raw json.RawMessage, _ *jiratime.Codec) error {
			return json.Unmarshal(raw, &c.Self)
		},
		encode: func(c *Comment, _ *jiratime.Codec) (json.RawMessage, error) {
			if c.Self == "" {
				return nil, nil
			}
			return json.Marshal(c.Self)
		},
	},
	{
		wire: "author",
		decode: func(c *Comment, raw json.RawMessage, _ *jiratime.Codec) error {
			return json.Unmarshal(raw, &c.Author)
		},
		encode: func(c *Comment, _ *jiratime.Codec) (json.RawMessage, error) {
			return json.Marshal(c.Author)
		},
	},
	{
		wire: "body",
		decode: func(c *Comment, raw json.RawMessage, _ *jiratime.Codec) error {
			return json.Unmarshal(raw, &c.Body)
		},
		encode: func(c *Comment, _ *jiratime.Codec) (json.RawMessage, error) {
			return json.Marshal(c.Body)
		},
	},
	{
		wire: "created",
		decode: func(c *Comment, raw json.RawMessage, codec *jiratime.Codec) (err error) {
			c.Created, err = codec.DecodeJSON(raw)
			return err
		},
		encode: func(c *Comment, codec *jiratime.Codec) (json.RawMessage, error) {
			return codec.EncodeJSON(c.Created)
		},
	},
	{
		wire: "updateAuthor",
		decode: func(c *Comment, raw json.RawMessage, _ *jiratime.Codec) error {
			return json.Unmarshal(raw, &c.UpdateAuthor)
		},
		encode: func(c *Comment, _ *jiratime.Codec) (json.RawMessage, error) {
			return json.Marshal(c.UpdateAuthor)
		},
	},
	{
		wire: "updated",
		decode: func(c *Comment, raw json.RawMessage, codec *jiratime.Codec) (err error) {
			c.Updated, err = codec.DecodeJSON(raw)
			return err
		},
		encode: func(c *Comment, codec *jiratime.Codec) (json.RawMessage, error) {
			return codec.EncodeJSON(c.Updated)
		},
	},
	{
		wire: "visibility",
		decode: func(c *Comment, raw json.RawMessage, _ *jiratime.Codec) error {
			c.Visibility = &Visibility{}
			return json.Unmarshal(raw, c.Visibility)
		},
		encode: func(c *Comment, _ *jiratime.Codec) (json.RawMessage, error) {
			if c.Visibility == nil {
				return nil, nil
			}
			return json.Marshal(c.Visibility)
		},
	},
}

// CommentWireNames lists the JSON field names a Comment is mapped from, in encoding order.
func CommentWireNames() []string {
	names := make([]string, len(commentFields))
	for i, f := range commentFields {
		names[i] = f.wire
	}
	return names
}

// DecodeComment decodes a JIRA comment object, reading timestamps with codec.
// Unknown fields are ignored and null fields are left at their zero value.
func DecodeComment(data []byte, codec *jiratime.Codec) (*Comment, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode comment: %w", err)
	}

	c := &Comment{}
	for _, f := range commentFields {
		value, ok := raw[f.wire]
		if !ok || jiratime.TokenKindOf(value) == jiratime.TokenNull {
			continue
		}
		if err := f.decode(c, value, codec); err != nil {
			return nil, fmt.Errorf("failed to decode comment field %q: %w", f.wire, err)
		}
	}
	return c, nil
}

// EncodeComment renders c as a JIRA comment object, writing timestamps with codec.
func EncodeComment(c *Comment, codec *jiratime.Codec) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range commentFields {
		value, err := f.encode(c, codec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode comment field %q: %w", f.wire, err)
		}
		if value == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, "%q:", f.wire)
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes c using the default timestamp codec.
func (c *Comment) UnmarshalJSON(b []byte) error {
	decoded, err := DecodeComment(b, jiratime.Default())
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// MarshalJSON encodes c using the default timestamp codec.
func (c Comment) MarshalJSON() ([]byte, error) {
	return EncodeComment(&c, jiratime.Default())
}

// CommentPage is one page of comments as returned by the issue comment endpoint.
type CommentPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Comments   []Comment `json:"comments"`
}

// DecodeCommentPage decodes a comment page, reading timestamps with codec.
func DecodeCommentPage(data []byte, codec *jiratime.Codec) (*CommentPage, error) {
	var envelope struct {
		StartAt    int               `json:"startAt"`
		MaxResults int               `json:"maxResults"`
		Total      int               `json:"total"`
		Comments   []json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode comment page: %w", err)
	}

	page := &CommentPage{
		StartAt:    envelope.StartAt,
		MaxResults: envelope.MaxResults,
		Total:      envelope.Total,
		Comments:   make([]Comment, 0, len(envelope.Comments)),
	}
	for i, raw := range envelope.Comments {
		c, err := DecodeComment(raw, codec)
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", page.StartAt+i, err)
		}
		page.Comments = append(page.Comments, *c)
	}
	return page, nil
}

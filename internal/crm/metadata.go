package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Field describes one field of a CRM object.
type Field struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	Createable bool   `json:"createable"`
	Updateable bool   `json:"updateable"`
}

type describeResult struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// DescribeFields fetches the field list of an object. The mapping editor
// uses it to suggest destination field names.
func (c *Client) DescribeFields(ctx context.Context, object string) ([]Field, error) {
	data, err := c.doRequest(ctx, http.MethodGet, c.restPath("sobjects/"+object+"/describe"), nil, nil)
	if err != nil {
		return nil, err
	}

	var result describeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse describe response: %w", err)
	}

	c.logger.Debug("described object",
		slog.String("object", object),
		slog.Int("fields", len(result.Fields)),
	)
	return result.Fields, nil
}

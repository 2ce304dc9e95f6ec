package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wekeepgrowing/semo-workspace/pkg/messaging"
)

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// event 이벤트 출력 형식. data는 JSON 그대로 풀어서 출력합니다.
type event struct {
	ID         string                 `json:"id" yaml:"id"`
	Type       string                 `json:"type" yaml:"type"`
	Channel    string                 `json:"channel" yaml:"channel"`
	OccurredAt time.Time              `json:"occurred_at" yaml:"occurred_at"`
	Data       map[string]interface{} `json:"data" yaml:"data"`
}

func eventView(msg messaging.Message) event {
	out := event{
		ID:         msg.Envelope.ID,
		Type:       msg.Envelope.Type,
		Channel:    msg.Channel,
		OccurredAt: msg.Envelope.OccurredAt,
	}
	_ = json.Unmarshal(msg.Envelope.Data, &out.Data)
	return out
}

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Broker 이벤트 발행/구독 인터페이스
type Broker interface {
	Publish(ctx context.Context, channel string, eventType string, payload interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan Message, error)
	Close() error
}

// Envelope 채널로 전송되는 메시지 형식
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// Message 구독자가 받는 메시지
type Message struct {
	Channel  string
	Envelope Envelope
	Received time.Time
}

// Options Redis 연결 옵션
type Options struct {
	Addr     string
	Password string
	DB       int
}

type redisBroker struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisBroker Redis pub/sub 브로커를 생성하고 연결을 확인합니다.
func NewRedisBroker(opts Options) (Broker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	return &redisBroker{client: client, now: time.Now}, nil
}

// NewEnvelope 페이로드를 직렬화해 새 메시지 봉투를 만듭니다.
func NewEnvelope(eventType string, payload interface{}, occurredAt time.Time) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("메시지 직렬화 실패: %w", err)
	}
	return Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Data:       data,
	}, nil
}

// DecodeEnvelope 채널에서 받은 원시 페이로드를 봉투로 역직렬화합니다.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("메시지 역직렬화 실패: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("메시지 타입 누락")
	}
	return env, nil
}

// Publish 이벤트를 봉투로 감싸 채널에 발행합니다.
func (r *redisBroker) Publish(ctx context.Context, channel string, eventType string, payload interface{}) error {
	env, err := NewEnvelope(eventType, payload, r.now())
	if err != nil {
		return err
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}
	return r.client.Publish(ctx, channel, raw).Err()
}

// Subscribe 채널을 구독합니다. ctx가 끝나면 반환된 채널이 닫힙니다.
// 해석할 수 없는 메시지는 건너뜁니다.
func (r *redisBroker) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	pubsub := r.client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("채널 구독 실패: %w", err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				env, err := DecodeEnvelope([]byte(msg.Payload))
				if err != nil {
					continue
				}
				select {
				case out <- Message{Channel: msg.Channel, Envelope: env, Received: r.now()}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (r *redisBroker) Close() error {
	return r.client.Close()
}

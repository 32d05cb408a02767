package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJS struct {
	nats.JetStreamContext
	subject string
	data    []byte
	err     error
}

func (f *fakeJS) Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error) {
	f.subject = subj
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return &nats.PubAck{Stream: "PODCAST_EVENTS", Sequence: 1}, nil
}

type fakeManager struct {
	nats.JetStreamManager
	infoErr error
	added   *nats.StreamConfig
}

func (f *fakeManager) StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &nats.StreamInfo{Config: nats.StreamConfig{Name: stream}}, nil
}

func (f *fakeManager) AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error) {
	f.added = cfg
	return &nats.StreamInfo{Config: *cfg}, nil
}

func TestPublishUsesEventSubject(t *testing.T) {
	js := &fakeJS{}
	p := NewJetStreamPublisher(js)

	require.NoError(t, p.Publish(context.Background(), "episode.published", []byte(`{"id":1}`)))
	assert.Equal(t, "podcast.events.episode.published", js.subject)
	assert.Equal(t, `{"id":1}`, string(js.data))

	js.err = errors.New("no responders")
	assert.Error(t, p.Publish(context.Background(), "episode.published", nil))
}

func TestConfigureStream(t *testing.T) {
	existing := &fakeManager{}
	require.NoError(t, ConfigureStream(existing, "PODCAST_EVENTS"))
	assert.Nil(t, existing.added)

	missing := &fakeManager{infoErr: nats.ErrStreamNotFound}
	require.NoError(t, ConfigureStream(missing, "PODCAST_EVENTS"))
	require.NotNil(t, missing.added)
	assert.Equal(t, "PODCAST_EVENTS", missing.added.Name)
	assert.Equal(t, []string{"podcast.events.>"}, missing.added.Subjects)

	broken := &fakeManager{infoErr: errors.New("timeout")}
	assert.Error(t, ConfigureStream(broken, "PODCAST_EVENTS"))
}

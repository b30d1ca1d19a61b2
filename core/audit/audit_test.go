package audit

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"catalog-mirror/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var rows = []json.RawMessage{
	json.RawMessage(`{"id":"c1","name":"Фрукты"}`),
	json.RawMessage(`{"id":"c2","name":"A&B"}`),
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		client  bool
		want    any
		wantErr bool
	}{
		{"Default is file", Config{Dir: "x"}, false, &FileSink{}, false},
		{"Storage", Config{Sink: "storage"}, true, &StorageSink{}, false},
		{"Storage without client", Config{Sink: "storage"}, false, nil, true},
		{"None", Config{Sink: "none"}, false, NopSink{}, false},
		{"Unknown", Config{Sink: "ftp"}, false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var client *mocks.Client
			if tt.client {
				client = new(mocks.Client)
			}
			var sink Sink
			var err error
			if client != nil {
				sink, err = New(tt.cfg, client, "bucket")
			} else {
				sink, err = New(tt.cfg, nil, "bucket")
			}
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, sink)
		})
	}
}

func TestFileSink_Dump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "json_logs")
	sink := &FileSink{Dir: dir}

	require.NoError(t, sink.Dump(context.Background(), "categories", rows))

	data, err := os.ReadFile(filepath.Join(dir, "categories.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Фрукты")
	assert.Contains(t, string(data), "A&B")
	assert.Contains(t, string(data), "\n    {")
	assert.JSONEq(t, `[{"id":"c1","name":"Фрукты"},{"id":"c2","name":"A&B"}]`, string(data))
}

func TestFileSink_DumpEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, (&FileSink{Dir: dir}).Dump(context.Background(), "products", nil))

	data, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestStorageSink_Dump(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)

	var uploaded []byte
	m.On("PutObject", ctx, "bucket", "audit/counterparties.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	sink := &StorageSink{Client: m, Bucket: "bucket", Prefix: "audit/"}
	require.NoError(t, sink.Dump(ctx, "counterparties", rows))

	assert.JSONEq(t, `[{"id":"c1","name":"Фрукты"},{"id":"c2","name":"A&B"}]`, string(uploaded))
	m.AssertExpectations(t)
}

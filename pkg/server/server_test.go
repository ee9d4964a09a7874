package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/getzep/zep-ner/config"
	"github.com/getzep/zep-ner/internal"
	"github.com/getzep/zep-ner/pkg/client"
	"github.com/getzep/zep-ner/pkg/models"
	"github.com/getzep/zep-ner/pkg/nerpb"
	"github.com/getzep/zep-ner/pkg/toolkit"
)

var (
	testCtx   context.Context
	testProse *toolkit.Prose
	testLog   logrus.FieldLogger
)

func TestMain(m *testing.M) {
	logger := internal.GetLogger()
	internal.SetLogLevel(logrus.DebugLevel)
	testLog = logrus.NewEntry(logger)
	testCtx = context.Background()
	testProse = toolkit.NewProse(false)

	os.Exit(m.Run())
}

type testServer struct {
	srv  *Server
	conn *grpc.ClientConn
	cli  *client.Client
	rpc  *nerpb.NERClient
}

func testConfig(workers int) *config.Config {
	return &config.Config{Server: config.ServerConfig{
		Workers:        workers,
		MaxRecvMsgSize: config.DefaultMaxRecvMsgSize,
	}}
}

// startServer serves tk over an in-memory listener until the test ends.
func startServer(t *testing.T, tk models.Toolkit, workers int) *testServer {
	t.Helper()

	service := NewNERService(toolkit.NewProcessor(tk), testLog)
	srv := New(testConfig(workers), service, testLog)

	lis := bufconn.Listen(1 << 20)
	require.NoError(t, srv.BindListener(lis))

	served := make(chan error, 1)
	go func() { served <- srv.Serve() }()

	conn, err := grpc.DialContext(testCtx, "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		ctx, cancel := context.WithTimeout(testCtx, 5*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
		assert.NoError(t, <-served)
	})

	return &testServer{
		srv:  srv,
		conn: conn,
		cli:  client.New(conn),
		rpc:  nerpb.NewNERClient(conn),
	}
}

func TestShow(t *testing.T) {
	ts := startServer(t, testProse, 2)

	got, err := ts.cli.Show(testCtx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Processed => hello", got)

	// show never touches base64
	resp, err := ts.rpc.Show(testCtx, wrapperspb.String("aGVsbG8="))
	require.NoError(t, err)
	assert.Equal(t, "Processed => aGVsbG8=", resp.GetValue())
}

const obama = "Barack Obama was born in Hawaii."

func TestTokenize(t *testing.T) {
	ts := startServer(t, testProse, 2)

	got, err := ts.cli.Tokenize(testCtx, obama)
	require.NoError(t, err)
	assert.Equal(t, "['Barack', 'Obama', 'was', 'born', 'in', 'Hawaii', '.']", got)
}

func TestTag(t *testing.T) {
	ts := startServer(t, testProse, 2)

	got, err := ts.cli.Tag(testCtx, obama)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "[('Barack', 'NNP'), ('Obama', 'NNP'), "), got)
	assert.Equal(t, 7, strings.Count(got, "('"), "one pair per token")
}

func TestChunk(t *testing.T) {
	ts := startServer(t, testProse, 2)

	got, err := ts.cli.Chunk(testCtx, obama)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "(S"), got)
	assert.Regexp(t, regexp.MustCompile(`\([A-Z]+ Barack/NNP Obama/NNP\)`), got)
	assert.Contains(t, got, "was/VBD")
}

func TestEmptyInput(t *testing.T) {
	ts := startServer(t, testProse, 2)

	testCases := []struct {
		op       string
		expected string
	}{
		{op: "tokenize", expected: "[]"},
		{op: "tag", expected: "[]"},
		{op: "chunk", expected: "(S )"},
	}
	for _, tc := range testCases {
		t.Run(tc.op, func(t *testing.T) {
			got, err := ts.cli.Call(testCtx, tc.op, "")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMalformedPayload(t *testing.T) {
	ts := startServer(t, testProse, 2)

	calls := map[string]func(context.Context, *wrapperspb.StringValue, ...grpc.CallOption) (*wrapperspb.StringValue, error){
		"tokenize": ts.rpc.Tokenize,
		"tag":      ts.rpc.Tag,
		"chunk":    ts.rpc.Chunk,
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(testCtx, 5*time.Second)
			defer cancel()

			_, err := call(ctx, wrapperspb.String("!!! not base64 !!!"))
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, status.Convert(err).Message(), "not base64")
		})
	}
}

func TestConcurrentCallsDoNotCrossTalk(t *testing.T) {
	ts := startServer(t, testProse, 4)
	faker := gofakeit.New(0)

	const n = 40
	inputs := make([]string, n)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("Marker%d %s", i, faker.Word())
	}

	g, ctx := errgroup.WithContext(testCtx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			marker := fmt.Sprintf("Marker%d", i)
			switch i % 4 {
			case 0:
				got, err := ts.cli.Show(ctx, in)
				if err != nil {
					return err
				}
				if got != ShowPrefix+in {
					return fmt.Errorf("show %d: got %q", i, got)
				}
			case 1:
				got, err := ts.cli.Tokenize(ctx, in)
				if err != nil {
					return err
				}
				if !strings.HasPrefix(got, "['"+marker+"'") {
					return fmt.Errorf("tokenize %d: got %q", i, got)
				}
			case 2:
				got, err := ts.cli.Tag(ctx, in)
				if err != nil {
					return err
				}
				if !strings.HasPrefix(got, "[('"+marker+"', ") {
					return fmt.Errorf("tag %d: got %q", i, got)
				}
			case 3:
				got, err := ts.cli.Chunk(ctx, in)
				if err != nil {
					return err
				}
				if !strings.Contains(got, marker+"/") {
					return fmt.Errorf("chunk %d: got %q", i, got)
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

func TestVersionAndRequestIDHeaders(t *testing.T) {
	ts := startServer(t, testProse, 1)

	var header metadata.MD
	ctx := metadata.AppendToOutgoingContext(testCtx, requestIDHeader, "req-123")
	_, err := ts.cli.Show(ctx, "x", grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{config.VersionString}, header.Get(versionHeader))
	assert.Equal(t, []string{"req-123"}, header.Get(requestIDHeader))
}

func TestHealth(t *testing.T) {
	ts := startServer(t, testProse, 1)
	hc := healthpb.NewHealthClient(ts.conn)

	for _, name := range append([]string{""}, nerpb.ServiceNames...) {
		resp, err := hc.Check(testCtx, &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), name)
	}
}

// blockingToolkit parks Tokenize until release is closed, or panics when
// asked to.
type blockingToolkit struct {
	*toolkit.Prose
	started chan struct{}
	release chan struct{}
	panics  bool
}

func (b *blockingToolkit) Tokenize(text string) ([]string, error) {
	if b.panics {
		panic("tokenizer exploded")
	}
	if b.started != nil {
		b.started <- struct{}{}
	}
	if b.release != nil {
		<-b.release
	}
	return b.Prose.Tokenize(text)
}

func TestPanicBecomesUnknown(t *testing.T) {
	ts := startServer(t, &blockingToolkit{Prose: testProse, panics: true}, 1)

	_, err := ts.cli.Tokenize(testCtx, "anything")
	require.Error(t, err)
	assert.Equal(t, codes.Unknown, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "tokenizer exploded")

	got, err := ts.cli.Show(testCtx, "still alive")
	require.NoError(t, err)
	assert.Equal(t, "Processed => still alive", got)
}

func TestDeadlineWhileWorkersBusy(t *testing.T) {
	tk := &blockingToolkit{
		Prose:   testProse,
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	ts := startServer(t, tk, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := ts.cli.Tokenize(testCtx, "first call")
		assert.NoError(t, err)
	}()
	<-tk.started

	ctx, cancel := context.WithTimeout(testCtx, 100*time.Millisecond)
	defer cancel()
	_, err := ts.cli.Show(ctx, "queued")
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))

	close(tk.release)
	wg.Wait()
}

func TestLifecycle(t *testing.T) {
	cfg := testConfig(2)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	srv := New(cfg, NewNERService(toolkit.NewProcessor(testProse), testLog), testLog)
	assert.Equal(t, StateCreated, srv.State())
	assert.Nil(t, srv.Addr())

	assert.ErrorIs(t, srv.Serve(), ErrInvalidState)

	require.NoError(t, srv.Bind())
	assert.Equal(t, StateBound, srv.State())
	addr := srv.Addr().String()

	assert.ErrorIs(t, srv.Bind(), ErrInvalidState)

	served := make(chan error, 1)
	go func() { served <- srv.Serve() }()

	cli, err := client.Dial(addr)
	require.NoError(t, err)
	defer cli.Close()

	ctx, cancel := context.WithTimeout(testCtx, 5*time.Second)
	defer cancel()
	got, err := cli.Show(ctx, "over tcp", grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, "Processed => over tcp", got)
	assert.Equal(t, StateServing, srv.State())

	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-served)
	assert.Equal(t, StateStopped, srv.State())

	assert.ErrorIs(t, srv.Stop(ctx), ErrInvalidState)
	assert.ErrorIs(t, srv.Serve(), ErrInvalidState)

	// the port is free again
	lis, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	_ = lis.Close()
}

func TestStopBeforeServeReleasesPort(t *testing.T) {
	cfg := testConfig(1)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	srv := New(cfg, NewNERService(toolkit.NewProcessor(testProse), testLog), testLog)
	require.NoError(t, srv.Bind())
	addr := srv.Addr().String()

	require.NoError(t, srv.Stop(testCtx))
	assert.Equal(t, StateStopped, srv.State())

	lis, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	_ = lis.Close()
}

func TestBindPortInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	cfg := testConfig(1)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = taken.Addr().(*net.TCPAddr).Port

	srv := New(cfg, NewNERService(toolkit.NewProcessor(testProse), testLog), testLog)
	err = srv.Bind()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
	assert.Equal(t, StateCreated, srv.State())
}

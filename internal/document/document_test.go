package document_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"aspkit/internal/diag"
	"aspkit/internal/document"
	"aspkit/internal/incremental"
	"aspkit/internal/parser"
)

const uri = "file:///site/index.asp"

func TestOpenPublishesBlockDiagnostics(t *testing.T) {
	st := document.NewStore(parser.Options{})
	snap := st.Open(uri, "/site/index.asp", 1, "<% If a Then %><p>x</p>")
	require.Equal(t, int32(1), snap.Version)
	require.Len(t, snap.Diagnostics(), 1)
	require.Equal(t, diag.BlkUnclosed, snap.Diagnostics()[0].Code)
	require.Empty(t, snap.Blocks.Pairs)
}

func TestApplyEditClosesBlock(t *testing.T) {
	st := document.NewStore(parser.Options{})
	st.Open(uri, "/site/index.asp", 1, "<% If a Then %><p>x</p>")
	d, ok := st.Get(uri)
	require.True(t, ok)

	snap, err := d.Apply(2, incremental.Edit{Start: 23, End: 23, Text: "<% End If %>"})
	require.NoError(t, err)
	require.Equal(t, "<% If a Then %><p>x</p><% End If %>", snap.Text())
	require.Empty(t, snap.Diagnostics())
	require.Len(t, snap.Blocks.Pairs, 1)
	require.Same(t, snap, d.Snapshot())
}

func TestSequentialEditsInOneBatch(t *testing.T) {
	st := document.NewStore(parser.Options{})
	st.Open(uri, "/site/index.asp", 1, "<% a = 1 %>")
	d, _ := st.Get(uri)

	snap, err := d.Apply(2,
		incremental.Edit{Start: 9, End: 9, Text: "+1"},
		incremental.Edit{Start: 3, End: 4, Text: "total"},
	)
	require.NoError(t, err)
	require.Equal(t, "<% total = 1 +1%>", snap.Text())
	require.Equal(t, incremental.PathScript, snap.Stats.Path)
	require.Equal(t, 2, snap.Stats.Reparsed)
}

func TestStaleVersionIsRejected(t *testing.T) {
	st := document.NewStore(parser.Options{})
	st.Open(uri, "/site/index.asp", 5, "<% a %>")
	d, _ := st.Get(uri)

	cur, err := d.Replace(4, "<% b %>")
	require.True(t, errors.Is(err, document.ErrStaleVersion))
	require.Equal(t, "<% a %>", cur.Text())
}

func TestBadEditKeepsSnapshot(t *testing.T) {
	st := document.NewStore(parser.Options{})
	before := st.Open(uri, "/site/index.asp", 1, "<% a %>")
	d, _ := st.Get(uri)

	_, err := d.Apply(2, incremental.Edit{Start: 2, End: 100})
	require.Error(t, err)
	require.Same(t, before, d.Snapshot())
}

func TestIncludeFilesWarn(t *testing.T) {
	st := document.NewStore(parser.Options{})
	snap := st.Open("file:///site/top.inc", "/site/top.inc", 1, "<% If a Then %>")
	require.Len(t, snap.Diagnostics(), 1)
	require.Equal(t, diag.SevWarning, snap.Diagnostics()[0].Severity)
}

func TestStoreCloseAndList(t *testing.T) {
	st := document.NewStore(parser.Options{})
	st.Open("file:///b.asp", "/b.asp", 1, "")
	st.Open("file:///a.asp", "/a.asp", 1, "")
	require.Equal(t, []string{"file:///a.asp", "file:///b.asp"}, st.URIs())

	require.True(t, st.Close("file:///a.asp"))
	require.False(t, st.Close("file:///a.asp"))
	_, err := st.Must("file:///a.asp")
	require.Error(t, err)
}

func TestReadersSeeWholeSnapshots(t *testing.T) {
	st := document.NewStore(parser.Options{})
	st.Open(uri, "/site/index.asp", 0, "<% x = 0 %>")
	d, _ := st.Get(uri)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := d.Snapshot()
				if want := len("<% x = 0 %>") + 2*int(s.Version); len(s.Text()) != want {
					t.Errorf("version %d: text length %d, want %d", s.Version, len(s.Text()), want)
					return
				}
			}
		}()
	}
	for v := int32(1); v <= 50; v++ {
		_, err := d.Apply(v, incremental.Edit{Start: 7, End: 7, Text: "+1"})
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
	require.Equal(t, int32(50), d.Snapshot().Version)
}

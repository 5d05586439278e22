package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/RoanBrand/NMRStats/config"
	"github.com/RoanBrand/NMRStats/http"
	"github.com/RoanBrand/NMRStats/log"
	"github.com/RoanBrand/NMRStats/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *app {
	root := t.TempDir()
	for i, user := range []string{"maxim", "olga"} {
		expno := filepath.Join(root, user, "nmr", "exp", "1")
		require.NoError(t, os.MkdirAll(expno, 0755))
		start := time.Date(2015+i, 3, 1, 10, 0, 0, 0, time.Local)
		content := "##$DATE= " + strconv.FormatInt(start.Unix(), 10) + "\n##$NUC1= <1H>\n##$BF1= 600.13\n"
		require.NoError(t, os.WriteFile(filepath.Join(expno, "acqus"), []byte(content), 0644))
	}

	conf := config.Default()
	conf.DataSource = root
	conf.Workers = 2

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	return &app{conf: conf}
}

func TestGetStats(t *testing.T) {
	a := testApp(t)

	sum, err := a.getStats(context.Background(), 2015, "", true)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)
	assert.Equal(t, 1, sum.YearFiles)
	require.Len(t, sum.Lines, 1)
	assert.Contains(t, sum.Lines[0], "600MHz")

	sum, err = a.getStats(context.Background(), 2016, "olga", false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Files)
	assert.Equal(t, 1, sum.YearFiles)
	assert.Empty(t, sum.Lines)

	sum, err = a.getStats(context.Background(), 2016, "maxim", false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Files)
	assert.Zero(t, sum.YearFiles)
}

func TestGetStatsStaysInDataSource(t *testing.T) {
	a := testApp(t)

	for _, p := range []string{"..", "../etc", "maxim/../../etc"} {
		_, err := a.getStats(context.Background(), 2015, p, false)
		assert.ErrorIs(t, err, http.ErrBadRequest, p)
	}

	root, err := a.scanRoot("maxim/nmr")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a.conf.DataSource, "maxim", "nmr"), root)
}

func TestGetStatsMissingDir(t *testing.T) {
	a := testApp(t)
	_, err := a.getStats(context.Background(), 2015, "nobody", false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const numRetrievals = 50

func TestConcurrentRetrieval(t *testing.T) {
	a := testApp(t)
	srv := httptest.NewServer(http.NewMux(a.getStats))
	defer srv.Close()

	done := make(chan struct{})
	errPipe := make(chan string, numRetrievals)
	var wg sync.WaitGroup
	wg.Add(numRetrievals)

	for i := 0; i < numRetrievals; i++ {
		go func(i int) {
			defer wg.Done()
			time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)

			year := 2015 + i%2
			resp, err := nethttp.Get(fmt.Sprintf("%s/stats?year=%d", srv.URL, year))
			if err != nil {
				errPipe <- fmt.Sprintf("Error retrieving stats on iteration %d: %s", i, err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != nethttp.StatusOK {
				errPipe <- fmt.Sprintf("status %d on iteration %d", resp.StatusCode, i)
				return
			}

			var res stats.Summary
			if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
				errPipe <- fmt.Sprintf("Error decoding stats on iteration %d: %s", i, err)
				return
			}
			if res.Year != year || res.Files != 2 || res.YearFiles != 1 {
				errPipe <- fmt.Sprintf("iteration %d: unexpected stats %+v", i, res)
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case errMsg := <-errPipe:
		t.Fatal(errMsg)
	case <-done:
	}
}

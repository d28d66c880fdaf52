package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"news_monitor/internal/fetcher"
	"news_monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sportsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>IA y deporte</title>
		<item>
			<title>Older story</title>
			<description><![CDATA[<p>Un <b>modelo</b>&nbsp;analiza   partidos</p>]]></description>
			<pubDate>Mon, 01 Jan 2024 09:00:00 +0000</pubDate>
			<link>http://x/1</link>
		</item>
		<item>
			<title>  Newer story  </title>
			<description>Plain summary</description>
			<pubDate>Tue, 02 Jan 2024 10:05:00 +0000</pubDate>
			<link>http://x/2</link>
		</item>
		<item>
			<title></title>
			<description>No title, dropped</description>
			<link>http://x/3</link>
		</item>
		<item>
			<title>Undated story</title>
			<description></description>
			<link>http://x/4</link>
		</item>
	</channel>
</rss>`

const duplicateFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom mirror</title>
	<entry>
		<title>Newer story (mirror)</title>
		<link href="http://x/2"/>
		<updated>2024-01-03T12:00:00Z</updated>
		<summary>Duplicate link</summary>
	</entry>
	<entry>
		<title>Atom only</title>
		<link href="http://y/1"/>
		<updated>2024-01-01T12:00:00Z</updated>
		<summary>From atom</summary>
	</entry>
</feed>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchNews(t *testing.T) {
	srv := serve(t, http.StatusOK, sportsFeed)

	f := fetcher.New(fetcher.Options{Feeds: []string{srv.URL}, Location: time.UTC})
	items, err := f.FetchNews(context.Background())
	require.NoError(t, err)

	require.Equal(t, []models.NewsItem{
		{Title: "Newer story", Summary: "Plain summary", Link: "http://x/2", PublishedAt: "2 ene 2024, 10:05"},
		{Title: "Older story", Summary: "Un modelo analiza partidos", Link: "http://x/1", PublishedAt: "1 ene 2024, 09:00"},
		{Title: "Undated story", Summary: "", Link: "http://x/4"},
	}, items)
}

func TestFetchNews_MergeFeeds(t *testing.T) {
	rss := serve(t, http.StatusOK, sportsFeed)
	atom := serve(t, http.StatusOK, duplicateFeed)

	f := fetcher.New(fetcher.Options{Feeds: []string{rss.URL, atom.URL}, Location: time.UTC})
	items, err := f.FetchNews(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	// the first feed wins on duplicate links
	assert.Equal(t, []string{"Newer story", "Atom only", "Older story", "Undated story"}, titles)
}

func TestFetchNews_MaxItems(t *testing.T) {
	srv := serve(t, http.StatusOK, sportsFeed)

	f := fetcher.New(fetcher.Options{Feeds: []string{srv.URL}, MaxItems: 1, Location: time.UTC})
	items, err := f.FetchNews(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Newer story", items[0].Title)
}

func TestFetchNews_EmptyFeed(t *testing.T) {
	srv := serve(t, http.StatusOK, `<rss version="2.0"><channel><title>empty</title></channel></rss>`)

	f := fetcher.New(fetcher.Options{Feeds: []string{srv.URL}})
	items, err := f.FetchNews(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestFetchNews_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "bad status", status: http.StatusBadGateway, body: sportsFeed, wantErr: "bad status code: 502"},
		{name: "not a feed", status: http.StatusOK, body: `{ not xml }`, wantErr: "parse feed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			good := serve(t, http.StatusOK, sportsFeed)
			bad := serve(t, tc.status, tc.body)

			f := fetcher.New(fetcher.Options{Feeds: []string{good.URL, bad.URL}})
			items, err := f.FetchNews(context.Background())
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
			require.Nil(t, items)
		})
	}
}

func TestFetchNews_Unreachable(t *testing.T) {
	srv := serve(t, http.StatusOK, sportsFeed)
	url := srv.URL
	srv.Close()

	f := fetcher.New(fetcher.Options{Feeds: []string{url}})
	_, err := f.FetchNews(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "do request")
}

func TestFetchNews_UserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(sportsFeed))
	}))
	defer srv.Close()

	f := fetcher.New(fetcher.Options{Feeds: []string{srv.URL}, UserAgent: "news-monitor/test"})
	_, err := f.FetchNews(context.Background())
	require.NoError(t, err)
	require.Equal(t, "news-monitor/test", ua)
}

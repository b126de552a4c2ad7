package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/readupapp/readup-go/internal/domain"
)

// maxResults is the largest page the volumes API allows per request.
const maxResults = 40

// SearchByAuthor finds books attributed to the named author using the
// inauthor query syntax. Each result is a transient candidate with a
// negative session-scoped id and the author recorded by name only.
func (c *Client) SearchByAuthor(ctx context.Context, name string) ([]domain.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("author name is empty")
	}
	return c.search(ctx, fmt.Sprintf("inauthor:%q", name))
}

// SearchBooks finds books matching a free-text query.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]domain.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	return c.search(ctx, query)
}

// AuthorCandidate derives an unimported author record from search results
// for a name. The id stays at the zero sentinel until the reconcile layer
// registers the candidate for promotion.
func (c *Client) AuthorCandidate(ctx context.Context, name string) (domain.Author, []domain.Book, error) {
	books, err := c.SearchByAuthor(ctx, name)
	if err != nil {
		return domain.Author{}, nil, err
	}
	author := domain.Author{
		Name:       strings.TrimSpace(name),
		BooksCount: len(books),
	}
	for _, b := range books {
		if b.Description != "" && author.Bio == "" {
			// Best description available from the catalog stands in for a
			// bio until the backend has a real one.
			author.Bio = firstSentence(b.Description)
			break
		}
	}
	return author, books, nil
}

func (c *Client) search(ctx context.Context, q string) ([]domain.Book, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	searchURL := c.baseURL + "/volumes?" + params.Encode()

	c.log.Debug().Str("query", q).Msg("searching google books")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.log.Debug().Str("query", q).Int("count", len(searchResp.Items)).Msg("google books results")

	books := make([]domain.Book, 0, len(searchResp.Items))
	for i := range searchResp.Items {
		info := searchResp.Items[i].VolumeInfo
		if info.Title == "" {
			continue
		}
		book := domain.Book{
			ID:            c.nextTransientID(),
			Title:         info.Title,
			Description:   info.Description,
			ISBN:          info.isbn13(),
			CoverURL:      info.ImageLinks.Thumbnail,
			PageCount:     info.PageCount,
			PublishedDate: info.PublishedDate,
		}
		if len(info.Authors) > 0 {
			book.AuthorName = info.Authors[0]
		}
		books = append(books, book)
	}
	return books, nil
}

func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".!?"); i > 0 && i < len(s)-1 {
		return s[:i+1]
	}
	// Truncation counts runes, not bytes, so a multi-byte character is
	// never cut in half.
	if utf8.RuneCountInString(s) > 280 {
		return string([]rune(s)[:280])
	}
	return s
}

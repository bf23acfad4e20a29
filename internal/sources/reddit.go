package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mhosigiri/FeedbackAI/internal/analysis"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/sirupsen/logrus"
)

const redditTokenURL = "https://www.reddit.com/api/v1/access_token"

// RedditSource pulls brand discussions from the Reddit search API.
type RedditSource struct {
	brand        string
	clientID     string
	clientSecret string
	bearerToken  string
	userAgent    string
	baseURL      string
	subreddits   []string
	client       *resty.Client
}

type redditAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Title           string  `json:"title"`
	Selftext        string  `json:"selftext"`
	Author          string  `json:"author"`
	Subreddit       string  `json:"subreddit"`
	Permalink       string  `json:"permalink"`
	Created         float64 `json:"created_utc"`
	LinkFlairText   string  `json:"link_flair_text"`
	AuthorFlairText string  `json:"author_flair_text"`
}

// RedditConfig carries the credentials and endpoints for the Reddit source.
type RedditConfig struct {
	Brand        string
	ClientID     string
	ClientSecret string
	BearerToken  string
	UserAgent    string
	BaseURL      string
	Subreddits   []string
}

// NewRedditSource creates a new Reddit source
func NewRedditSource(cfg RedditConfig) *RedditSource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://oauth.reddit.com"
	}
	return &RedditSource{
		brand:        cfg.Brand,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		bearerToken:  cfg.BearerToken,
		userAgent:    cfg.UserAgent,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		subreddits:   cfg.Subreddits,
		client:       resty.New().SetTimeout(15 * time.Second),
	}
}

func (r *RedditSource) Name() string {
	return models.SourceSocial
}

func (r *RedditSource) IsEnabled() bool {
	return r.bearerToken != "" || (r.clientID != "" && r.clientSecret != "")
}

// FetchPosts searches Reddit for brand mentions matching the query. One
// sub-search runs per subreddit branch, each capped so total volume stays
// bounded; a site-wide search runs when no subreddits are configured.
func (r *RedditSource) FetchPosts(ctx context.Context, query models.Query) ([]models.Post, error) {
	if !r.IsEnabled() {
		logrus.Debug("Reddit source disabled - missing credentials")
		return nil, nil
	}

	token, err := r.resolveToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("reddit authentication failed: %w", err)
	}

	branches := query.Subreddits
	if len(branches) == 0 {
		branches = r.subreddits
	}

	var allPosts []models.Post

	if len(branches) == 0 {
		posts, err := r.search(ctx, token, "", query, query.Limit)
		if err != nil {
			return nil, err
		}
		allPosts = posts
	} else {
		branchLimit := perBranchLimit(query.Limit, len(branches))
		for _, subreddit := range branches {
			posts, err := r.search(ctx, token, subreddit, query, branchLimit)
			if err != nil {
				logrus.Errorf("Failed to search r/%s: %v", subreddit, err)
				continue
			}
			allPosts = append(allPosts, posts...)
		}
	}

	if len(allPosts) > query.Limit {
		allPosts = allPosts[:query.Limit]
	}

	return allPosts, nil
}

// resolveToken walks the auth ladder: a statically configured bearer token
// first, then a client-credentials exchange. First success wins.
func (r *RedditSource) resolveToken(ctx context.Context) (string, error) {
	if r.bearerToken != "" {
		return r.bearerToken, nil
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		SetBasicAuth(r.clientID, r.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		Post(redditTokenURL)

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode())
	}

	var authResp redditAuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", err
	}
	if authResp.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	return authResp.AccessToken, nil
}

func (r *RedditSource) search(ctx context.Context, token, subreddit string, query models.Query, limit int) ([]models.Post, error) {
	q := url.QueryEscape(fmt.Sprintf("%q %s", r.brand, query.Text))

	var searchURL string
	if subreddit == "" {
		searchURL = fmt.Sprintf("%s/search.json?q=%s&sort=new&t=day&limit=%d", r.baseURL, q, limit)
	} else {
		searchURL = fmt.Sprintf("%s/r/%s/search.json?q=%s&restrict_sr=1&sort=new&t=day&limit=%d",
			r.baseURL, url.PathEscape(subreddit), q, limit)
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("User-Agent", r.userAgent).
		SetHeader("Accept", "application/json").
		Get(searchURL)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}

	var searchResp redditSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, err
	}

	return r.parseListing(searchResp, query), nil
}

func (r *RedditSource) parseListing(listing redditSearchResponse, query models.Query) []models.Post {
	var posts []models.Post

	for _, child := range listing.Data.Children {
		node := child.Data

		text := strings.TrimSpace(node.Title + "\n\n" + node.Selftext)
		if text == "" {
			continue
		}

		id := node.ID
		if id == "" {
			id = node.Name
		}

		author := node.Author
		if author == "" {
			author = "anonymous"
		}

		postedAt := time.Now().UTC()
		if node.Created > 0 {
			postedAt = time.Unix(int64(node.Created), 0).UTC()
		}

		permalink := ""
		if node.Permalink != "" {
			permalink = "https://reddit.com" + node.Permalink
		}

		location := analysis.InferLocation(text,
			[]string{node.LinkFlairText, node.AuthorFlairText}, query.LocationHint)

		posts = append(posts, models.Post{
			ID:        id,
			Text:      text,
			Author:    author,
			PostedAt:  postedAt,
			Location:  location,
			Permalink: permalink,
			Source:    models.SourceSocial,
		})
	}

	return posts
}

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	restPath   = "/rest/v1/"
	authPath   = "/auth/v1"
	singleJSON = "application/vnd.pgrst.object+json"
)

// Client is a Backend over the hosted REST and auth endpoints.
type Client struct {
	client  *resty.Client
	anonKey string
}

// NewClient builds a client for baseURL authenticated with the public anon key.
// The timeout bounds every request; there are no retries.
func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("apikey", anonKey).
			SetHeader("Accept", "application/json"),
		anonKey: anonKey,
	}
}

type apiError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *apiError) text() string {
	for _, s := range []string{e.Message, e.Msg, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	if token == "" {
		token = c.anonKey
	}
	return c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&apiError{})
}

func failure(op, collection string, resp *resty.Response, err error) error {
	if err != nil {
		return &Error{Op: op, Collection: collection, Err: err}
	}
	msg := http.StatusText(resp.StatusCode())
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.text() != "" {
		msg = apiErr.text()
	}
	return &Error{Op: op, Collection: collection, Status: resp.StatusCode(), Message: msg}
}

func (c *Client) list(ctx context.Context, token, collection string, out any) error {
	resp, err := c.request(ctx, token).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "created_at.desc",
		}).
		Get(restPath + collection)
	if err != nil || resp.IsError() {
		return failure("list", collection, resp, err)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &Error{Op: "list", Collection: collection, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, token, collection, id string, out any) error {
	resp, err := c.request(ctx, token).
		SetHeader("Accept", singleJSON).
		SetQueryParams(map[string]string{
			"select": "*",
			"id":     "eq." + id,
		}).
		Get(restPath + collection)
	if err != nil || resp.IsError() {
		return failure("get", collection, resp, err)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &Error{Op: "get", Collection: collection, Err: err}
	}
	return nil
}

// write sends a mutation that returns the affected rows and fails when
// none were affected.
func (c *Client) write(req *resty.Request, method, op, collection string, out any) error {
	resp, err := req.
		SetHeader("Prefer", "return=representation").
		Execute(method, restPath+collection)
	if err != nil || resp.IsError() {
		return failure(op, collection, resp, err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return &Error{Op: op, Collection: collection, Err: err}
	}
	if len(rows) == 0 {
		return &Error{Op: op, Collection: collection, Status: http.StatusNotFound, Message: "no matching record"}
	}
	if out != nil {
		if err := json.Unmarshal(rows[0], out); err != nil {
			return &Error{Op: op, Collection: collection, Err: err}
		}
	}
	return nil
}

func (c *Client) insert(ctx context.Context, token, collection string, record, out any) error {
	req := c.request(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(record)
	return c.write(req, http.MethodPost, "insert", collection, out)
}

func (c *Client) update(ctx context.Context, token, collection, id string, record, out any) error {
	req := c.request(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("id", "eq."+id).
		SetBody(record)
	return c.write(req, http.MethodPatch, "update", collection, out)
}

func (c *Client) delete(ctx context.Context, token, collection, id string) error {
	req := c.request(ctx, token).
		SetQueryParam("id", "eq."+id)
	return c.write(req, http.MethodDelete, "delete", collection, nil)
}

func (c *Client) count(ctx context.Context, token, collection string) (int, error) {
	resp, err := c.request(ctx, token).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "*").
		Head(restPath + collection)
	if err != nil || resp.IsError() {
		return 0, failure("count", collection, resp, err)
	}
	n, ok := parseContentRange(resp.Header().Get("Content-Range"))
	if !ok {
		return 0, &Error{Op: "count", Collection: collection, Message: "missing Content-Range total"}
	}
	return n, nil
}

// parseContentRange reads the total from "0-24/25" or "*/0".
func parseContentRange(value string) (int, bool) {
	i := strings.LastIndexByte(value, '/')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(value[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (c *Client) List(ctx context.Context, collection string, out any) error {
	return c.list(ctx, "", collection, out)
}

func (c *Client) Get(ctx context.Context, collection, id string, out any) error {
	return c.get(ctx, "", collection, id, out)
}

func (c *Client) Insert(ctx context.Context, collection string, record, out any) error {
	return c.insert(ctx, "", collection, record, out)
}

func (c *Client) Update(ctx context.Context, collection, id string, record, out any) error {
	return c.update(ctx, "", collection, id, record, out)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.delete(ctx, "", collection, id)
}

func (c *Client) Count(ctx context.Context, collection string) (int, error) {
	return c.count(ctx, "", collection)
}

// AsUser returns the collections authorised with an admin access token.
func (c *Client) AsUser(accessToken string) Collections {
	return &userScope{client: c, token: accessToken}
}

type userScope struct {
	client *Client
	token  string
}

func (u *userScope) List(ctx context.Context, collection string, out any) error {
	return u.client.list(ctx, u.token, collection, out)
}

func (u *userScope) Get(ctx context.Context, collection, id string, out any) error {
	return u.client.get(ctx, u.token, collection, id, out)
}

func (u *userScope) Insert(ctx context.Context, collection string, record, out any) error {
	return u.client.insert(ctx, u.token, collection, record, out)
}

func (u *userScope) Update(ctx context.Context, collection, id string, record, out any) error {
	return u.client.update(ctx, u.token, collection, id, record, out)
}

func (u *userScope) Delete(ctx context.Context, collection, id string) error {
	return u.client.delete(ctx, u.token, collection, id)
}

func (u *userScope) Count(ctx context.Context, collection string) (int, error) {
	return u.client.count(ctx, u.token, collection)
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         User   `json:"user"`
}

// SignInWithPassword exchanges admin credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var out tokenResponse
	resp, err := c.request(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post(authPath + "/token")
	if err != nil || resp.IsError() {
		return nil, failure("sign-in", "", resp, err)
	}
	if out.AccessToken == "" {
		return nil, &Error{Op: "sign-in", Message: "no access token in response"}
	}

	expires := time.Unix(out.ExpiresAt, 0)
	if out.ExpiresAt == 0 {
		expires = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	return &Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    expires,
		User:         out.User,
	}, nil
}

// GetUser returns the user behind an access token, failing when the session
// is no longer active.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, &Error{Op: "get-user", Message: "no access token"}
	}
	var user User
	resp, err := c.request(ctx, accessToken).
		SetResult(&user).
		Get(authPath + "/user")
	if err != nil || resp.IsError() {
		return nil, failure("get-user", "", resp, err)
	}
	return &user, nil
}

// SignOut revokes the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.request(ctx, accessToken).
		Post(authPath + "/logout")
	if err != nil || resp.IsError() {
		return failure("sign-out", "", resp, err)
	}
	return nil
}

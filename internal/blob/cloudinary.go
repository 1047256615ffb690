package blob

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const cloudinaryAPI = "https://api.cloudinary.com/v1_1/"

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	// BaseURL overrides the API root, used by tests.
	BaseURL string
}

// Cloudinary uploads images with signed requests to the Cloudinary upload API.
type Cloudinary struct {
	cfg    CloudinaryConfig
	client *http.Client
}

// StatusError is a non-2xx answer from the storage API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storage api status %d: %s", e.StatusCode, e.Message)
}

func NewCloudinary(cfg CloudinaryConfig, client *http.Client) (*Cloudinary, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("missing cloudinary credentials")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = cloudinaryAPI
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Cloudinary{cfg: cfg, client: client}, nil
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Result    string `json:"result"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Cloudinary) Put(ctx context.Context, obj Object) (string, error) {
	if err := rewind(obj); err != nil {
		return "", err
	}

	params := map[string]string{
		"public_id": c.publicID(obj.Key),
		"timestamp": timestamp(),
	}

	body, contentType, err := c.multipartBody(params, obj)
	if err != nil {
		return "", err
	}

	res, err := c.do(ctx, "image/upload", body, contentType)
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", obj.Key)
	}

	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	if res.URL != "" {
		return res.URL, nil
	}
	return "", errors.Errorf("upload %s: no url in response", obj.Key)
}

func (c *Cloudinary) Delete(ctx context.Context, url string) error {
	publicID, err := publicIDFromURL(url)
	if err != nil {
		return err
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp(),
	}

	body, contentType, err := c.multipartBody(params, Object{})
	if err != nil {
		return err
	}

	res, err := c.do(ctx, "image/destroy", body, contentType)
	if err != nil {
		return errors.Wrapf(err, "destroy %s", publicID)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return errors.Errorf("destroy %s: result %q", publicID, res.Result)
	}
	return nil
}

func (c *Cloudinary) publicID(key string) string {
	id := strings.TrimSuffix(key, path.Ext(key))
	if c.cfg.Folder != "" {
		id = c.cfg.Folder + "/" + id
	}
	return id
}

// sign implements the Cloudinary signature: sorted params joined with & plus the secret, sha1 hex.
func (c *Cloudinary) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	return fmt.Sprintf("%x", sha1.Sum([]byte(strings.Join(pairs, "&")+c.cfg.APISecret)))
}

func (c *Cloudinary) multipartBody(params map[string]string, obj Object) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"api_key":   c.cfg.APIKey,
		"signature": c.sign(params),
	}
	for k, v := range params {
		fields[k] = v
	}

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", errors.Wrap(err, "write form field")
		}
	}
	if obj.Body != nil {
		part, err := w.CreateFormFile("file", path.Base(obj.Key))
		if err != nil {
			return nil, "", errors.Wrap(err, "create form file")
		}
		if _, err := io.Copy(part, obj.Body); err != nil {
			return nil, "", errors.Wrap(err, "copy file")
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close form")
	}

	return buf, w.FormDataContentType(), nil
}

func (c *Cloudinary) do(ctx context.Context, action string, body io.Reader, contentType string) (*cloudinaryResponse, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + c.cfg.CloudName + "/" + action

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	var out cloudinaryResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out.Error.Message != "" {
		return nil, errors.New(out.Error.Message)
	}

	return &out, nil
}

// publicIDFromURL extracts the public id from
// https://res.cloudinary.com/{cloud}/image/upload/v{version}/{public_id}.{ext}
func publicIDFromURL(url string) (string, error) {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok || rest == "" {
		return "", errors.Wrapf(ErrInvalidKey, "not a cloudinary url: %s", url)
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 1 && len(segments[0]) > 1 && segments[0][0] == 'v' && isDigits(segments[0][1:]) {
		segments = segments[1:]
	}

	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id)), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

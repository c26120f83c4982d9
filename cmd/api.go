package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet sends a raw GET to the proxy (or upstream) and prints the body.
//
// Each --query key=value pair is appended to the path's query string.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if r.api == nil {
		return fmt.Errorf("%w: api client not initialized", shared.ErrServiceUnavailable)
	}

	query := url.Values{}
	for _, pair := range cmd.StringSlice("query") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: query %q must be key=value", shared.ErrInvalidFlag, pair)
		}
		query.Add(key, value)
	}

	r.logger.Debug("api get", "base", r.api.BaseURL(), "path", path, "query", query.Encode())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	resp, err := r.api.GetQuery(ctx, path, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.printResponse(resp, cmd.Bool("pretty"))
}

// APIPost sends --data as a JSON body and prints the response.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if r.api == nil {
		return fmt.Errorf("%w: api client not initialized", shared.ErrServiceUnavailable)
	}

	data := []byte(cmd.String("data"))
	if !json.Valid(data) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	r.logger.Debug("api post", "base", r.api.BaseURL(), "path", path, "bytes", len(data))

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	resp, err := r.api.Post(ctx, path, data)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.printResponse(resp, true)
}

// printResponse writes JSON bodies through writeJSON and anything else verbatim.
// Non-2xx statuses are returned as errors carrying the body.
func (r *Runner) printResponse(resp *services.APIResponse, pretty bool) error {
	if !resp.OK() {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(resp.Body)))
	}
	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}
	return r.writePlain("%s\n", resp.Body)
}

// apiCommand makes raw calls against the proxy, or upstream when no proxy is configured.
func apiCommand(r *Runner) *cli.Command {
	pathArg := []cli.Argument{&cli.StringArg{Name: "path"}}

	return &cli.Command{
		Name:  "api",
		Usage: "Raw requests to the scout proxy",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "GET a path and print the response",
				Arguments: pathArg,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON",
						Value: true,
					},
					&cli.StringSliceFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Query parameter as key=value (repeatable)",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "POST a JSON body to a path",
				Arguments: pathArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

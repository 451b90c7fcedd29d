package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/openloot/marketplace/internal/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var client *retryablehttp.Client

func main() {
	config.Init("cli")
	client = retryablehttp.NewClient()
	client.Logger = nil

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: "http://localhost:8080", Usage: "marketd API base url"},
		},
		Commands: []*cli.Command{
			{
				Name:   "listings",
				Usage:  "Show all listings",
				Action: getListings,
			},
			{
				Name:      "listing",
				Usage:     "Show a single listing",
				ArgsUsage: "<listingId>",
				Action:    getListing,
			},
			{
				Name:   "royalty",
				Usage:  "Show the royalty configured for an asset",
				Action: getRoyalty,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "avatar", Usage: "asset kind (avatar or accessory)"},
					&cli.Uint64Flag{Name: "asset", Usage: "asset id"},
				},
			},
			{
				Name:   "setRoyalty",
				Usage:  "Set the creator royalty percentage for an asset",
				Action: setRoyalty,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "avatar", Usage: "asset kind (avatar or accessory)"},
					&cli.Uint64Flag{Name: "asset", Usage: "asset id"},
					&cli.UintFlag{Name: "percentage", Usage: "royalty percentage (0-100)"},
					&cli.StringFlag{Name: "caller", Value: "", Usage: "administrator identity"},
				},
			},
			{
				Name:   "mint",
				Usage:  "Mint an asset into a registry",
				Action: mint,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "avatar", Usage: "asset kind (avatar or accessory)"},
					&cli.Uint64Flag{Name: "asset", Usage: "asset id"},
					&cli.StringFlag{Name: "owner", Usage: "owner account"},
					&cli.Uint64Flag{Name: "quantity", Value: 1, Usage: "quantity (stackable assets only)"},
				},
			},
			{
				Name:   "deposit",
				Usage:  "Credit an account with native value units",
				Action: deposit,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "account", Usage: "account to credit"},
					&cli.Uint64Flag{Name: "amount", Usage: "amount in native units"},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func getListings(c *cli.Context) error {
	return get(c, "/listings")
}

func getListing(c *cli.Context) error {
	return get(c, fmt.Sprintf("/listings/%s", c.Args().First()))
}

func getRoyalty(c *cli.Context) error {
	return get(c, fmt.Sprintf("/royalties/%s/%d", c.String("kind"), c.Uint64("asset")))
}

func setRoyalty(c *cli.Context) error {
	body := map[string]interface{}{
		"caller":     adminCaller(c),
		"percentage": c.Uint("percentage"),
	}

	return send(c, "PUT", fmt.Sprintf("/royalties/%s/%d", c.String("kind"), c.Uint64("asset")), body)
}

func mint(c *cli.Context) error {
	body := map[string]interface{}{
		"owner":    c.String("owner"),
		"assetId":  c.Uint64("asset"),
		"quantity": c.Uint64("quantity"),
	}

	return send(c, "POST", fmt.Sprintf("/assets/%s/mint", c.String("kind")), body)
}

func deposit(c *cli.Context) error {
	body := map[string]interface{}{
		"amount": c.Uint64("amount"),
	}

	return send(c, "POST", fmt.Sprintf("/accounts/%s/deposit", c.String("account")), body)
}

func adminCaller(c *cli.Context) string {
	if caller := c.String("caller"); caller != "" {
		return caller
	}

	return config.Get().AdminAddress
}

func get(c *cli.Context, path string) error {
	resp, err := client.Get(c.String("api") + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return dump(resp.StatusCode, resp.Body)
}

func send(c *cli.Context, method, path string, body map[string]interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequest(method, c.String("api")+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return dump(resp.StatusCode, resp.Body)
}

func dump(status int, body io.Reader) error {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		fmt.Printf("%d\n", status)
		return nil
	}

	fmt.Printf("%d %s\n", status, string(data))

	return nil
}

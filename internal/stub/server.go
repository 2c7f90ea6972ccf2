// Package stub serves a stand-in claims service for demos and manual
// testing of the console. It honours the /process transport contract and
// replays a fixed payload; it does no extraction or routing.
package stub

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/claimsdesk/fnol/internal/intake"
)

// Options configure the stub service.
type Options struct {
	Addr        string
	FixturePath string        // JSON claim payload to replay; empty uses SampleClaim
	Status      int           // when set to a non-2xx code every submission fails with it
	Body        string        // body sent with Status
	Delay       time.Duration // artificial latency per submission
	BodyLimit   int
}

const (
	defaultAddr      = "127.0.0.1:8000"
	defaultBodyLimit = 16 << 20
	shutdownTimeout  = 5 * time.Second
)

// SampleClaim is replayed when no fixture is configured.
const SampleClaim = `{
  "extractedFields": {
    "policyNumber": null,
    "policyholderName": "Asha Rao",
    "effectiveDates": "01/01/2024 - 31/12/2024",
    "incidentDate": "12/03/2024",
    "incidentTime": "10:30 AM",
    "incidentLocation": "MG Road, Pune",
    "incidentDescription": "Pedestrian struck while crossing at signal",
    "claimant": "Asha Rao",
    "thirdParties": "Ravi Kumar",
    "contactDetails": "+91 98200 00000",
    "assetType": "Car",
    "assetId": "MH12-AB-1234",
    "estimatedDamage": "18,000",
    "initialEstimate": "15,000",
    "claimType": "injury",
    "attachments": "photos.zip, police_report.pdf"
  },
  "missingFields": ["policyNumber"],
  "recommendedRoute": "Specialist Queue",
  "reasoning": "Claim type indicates injury."
}`

// New builds the fiber app without starting it.
func New(opts Options) (*fiber.App, error) {
	fixture, err := loadFixture(opts.FixturePath)
	if err != nil {
		return nil, err
	}
	if opts.Status != 0 && (opts.Status < 100 || opts.Status > 599) {
		return nil, fmt.Errorf("invalid status %d", opts.Status)
	}
	bodyLimit := opts.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               "fnol stub claims service",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173, http://127.0.0.1:5173",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Claims API running. POST a document to /process."})
	})

	app.Post(intake.ProcessPath, func(c *fiber.Ctx) error {
		header, err := c.FormFile(intake.FileField)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"detail": "multipart field \"file\" is required",
			})
		}
		log.Printf("stub: received %q (%d bytes) request=%s", header.Filename, header.Size, c.Get("X-Request-ID"))

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
		if opts.Status != 0 && (opts.Status < 200 || opts.Status > 299) {
			return c.Status(opts.Status).SendString(opts.Body)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(statusOr(opts.Status, fiber.StatusOK)).Send(fixture)
	})

	return app, nil
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	app, err := New(opts)
	if err != nil {
		return err
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = defaultAddr
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(addr) }()
	log.Printf("stub: listening on %s", addr)

	select {
	case <-ctx.Done():
		log.Printf("stub: shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	}
}

func loadFixture(path string) ([]byte, error) {
	data := []byte(SampleClaim)
	if strings.TrimSpace(path) != "" {
		read, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		data = read
	}
	if _, err := intake.DecodeClaim(data); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", fixtureName(path), err)
	}
	return data, nil
}

func fixtureName(path string) string {
	if strings.TrimSpace(path) == "" {
		return "(built-in)"
	}
	return path
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}

// Package mcp provides an MCP (Model Context Protocol) server for venue.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/carousel"
	"github.com/juanibiapina/venue/internal/catalog"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/juanibiapina/venue/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Backend is what the tools call. *app.App implements it.
type Backend interface {
	QueryVenues(ctx context.Context, q listing.Query) listing.Result
	Venue(ctx context.Context, id string) (*storage.Venue, error)
	ReviewPage(ctx context.Context, venueID string, page int) (carousel.Pager[storage.Review], error)
	RequestLoginCode(ctx context.Context, email string) (string, error)
	Login(ctx context.Context, email, code string, remember bool, fallback string) (string, error)
	Logout() error
	CurrentUser() (string, error)
	CreateBooking(ctx context.Context, req app.BookingRequest) (*storage.Booking, string, error)
	ConfirmBooking(ctx context.Context, bookingID, code string) error
	Bookings(ctx context.Context) ([]storage.Booking, error)
	Seed(ctx context.Context, path string) (catalog.Stats, error)
}

var _ Backend = (*app.App)(nil)

const defaultListLimit = 8

// Server wraps the MCP server with venue tools.
type Server struct {
	mcpServer *server.MCPServer
	backend   Backend
	tools     []string
}

// NewServer creates the MCP server. backend may be nil when only the tool
// list is needed.
func NewServer(version string, backend Backend) *Server {
	s := &Server{backend: backend}

	s.mcpServer = server.NewMCPServer(
		"venue",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

// ListToolNames returns the registered tool names, sorted.
func (s *Server) ListToolNames() []string {
	names := append([]string(nil), s.tools...)
	sort.Strings(names)
	return names
}

func (s *Server) registerTools() {
	s.registerListing("venue_venues", storage.KindEventCenter, "List event centers")
	s.registerListing("venue_catering", storage.KindCaterer, "List caterers")
	s.registerShow()
	s.registerReviews()
	s.registerLogin()
	s.registerLogout()
	s.registerWhoami()
	s.registerBook()
	s.registerConfirm()
	s.registerBookings()
	s.registerSeed()
}

// addTool registers a tool and records its outcome in telemetry.
func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.tools = append(s.tools, tool.Name)
	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := handler(ctx, request)
		telemetry.MCPToolCall(tool.Name, err == nil && result != nil && !result.IsError)
		return result, err
	})
}

// jsonResult marshals a result to JSON and returns a tool result.
func jsonResult(result any) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func venueJSON(v storage.Venue) map[string]any {
	return map[string]any{
		"id":         v.ID,
		"kind":       v.Kind,
		"name":       v.Name,
		"city":       v.City,
		"capacity":   v.Capacity,
		"price_from": v.PriceFrom,
		"rating":     v.Rating,
	}
}

func bookingJSON(b storage.Booking) map[string]any {
	info := map[string]any{
		"booking_id": b.ID,
		"venue_id":   b.VenueID,
		"event_date": b.EventDate.Format(time.DateOnly),
		"guests":     b.Guests,
		"status":     b.Status,
	}
	if b.ConfirmedAt != nil {
		info["confirmed_at"] = b.ConfirmedAt.Format(time.RFC3339)
	}
	return info
}

func (s *Server) registerListing(name string, kind storage.Kind, description string) {
	tool := mcp.NewTool(name,
		mcp.WithDescription(description+", one page at a time"),
		mcp.WithString("search",
			mcp.Description("Fuzzy match on the venue name"),
		),
		mcp.WithNumber("min_price",
			mcp.Description("Lowest starting price to include"),
		),
		mcp.WithNumber("max_price",
			mcp.Description("Highest starting price to include (0: no limit)"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, starting at 1 (default: 1)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Venues per page (default: %d)", defaultListLimit)),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page := request.GetInt("page", 1)
		limit := request.GetInt("limit", defaultListLimit)
		if page < 1 || limit < 1 {
			return mcp.NewToolResultError("page and limit must be at least 1"), nil
		}

		q := listing.Query{
			Kind:     kind,
			Search:   request.GetString("search", ""),
			MinPrice: request.GetInt("min_price", 0),
			MaxPrice: request.GetInt("max_price", 0),
			Limit:    limit,
			Offset:   (page - 1) * limit,
		}
		r := s.backend.QueryVenues(ctx, q)
		if r.Err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list venues: %v", r.Err)), nil
		}

		venues := make([]map[string]any, 0, len(r.Data))
		for _, v := range r.Data {
			venues = append(venues, venueJSON(v))
		}
		return jsonResult(map[string]any{
			"venues":      venues,
			"total":       r.Total,
			"page":        page,
			"total_pages": carousel.TotalPages(r.Total, limit),
		})
	})
}

func (s *Server) registerShow() {
	tool := mcp.NewTool("venue_show",
		mcp.WithDescription("Show one venue with its description"),
		mcp.WithString("venue_id",
			mcp.Required(),
			mcp.Description("Venue ID (e.g. grand-hall)"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("venue_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		v, err := s.backend.Venue(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		info := venueJSON(*v)
		info["description"] = v.Description
		info["path"] = nav.VenuePath(v.ID)
		return jsonResult(info)
	})
}

func (s *Server) registerReviews() {
	tool := mcp.NewTool("venue_reviews",
		mcp.WithDescription("Show one page of a venue's reviews, newest first"),
		mcp.WithString("venue_id",
			mcp.Required(),
			mcp.Description("Venue ID"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, starting at 1 (default: 1)"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("venue_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		page := request.GetInt("page", 1)

		p, err := s.backend.ReviewPage(ctx, id, page-1)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		reviews := make([]map[string]any, 0, len(p.Visible()))
		for _, r := range p.Visible() {
			reviews = append(reviews, map[string]any{
				"author": r.Author,
				"rating": r.Rating,
				"body":   r.Body,
				"date":   r.CreatedAt.Format(time.DateOnly),
			})
		}
		return jsonResult(map[string]any{
			"reviews":     reviews,
			"total":       len(p.Items()),
			"page":        p.Page() + 1,
			"total_pages": p.TotalPages(),
		})
	})
}

func (s *Server) registerLogin() {
	tool := mcp.NewTool("venue_login",
		mcp.WithDescription("Log in with a one-time code. Call with only email to send the code, then again with the code the user received"),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address"),
		),
		mcp.WithString("code",
			mcp.Description("Code from the email; omit to request one"),
		),
		mcp.WithBoolean("remember",
			mcp.Description("Keep the login after the server exits (default: true)"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		email, err := request.RequireString("email")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		code := request.GetString("code", "")
		if code == "" {
			if _, err := s.backend.RequestLoginCode(ctx, email); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to send code: %v", err)), nil
			}
			return jsonResult(map[string]any{"code_sent": true, "email": email})
		}

		next, err := s.backend.Login(ctx, email, code, request.GetBool("remember", true), nav.PathHome)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("login failed: %v", err)), nil
		}
		user, _ := s.backend.CurrentUser()
		return jsonResult(map[string]any{"email": user, "next": next})
	})
}

func (s *Server) registerLogout() {
	tool := mcp.NewTool("venue_logout",
		mcp.WithDescription("Log out and forget the stored session"),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.backend.Logout(); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("logout failed: %v", err)), nil
		}
		return jsonResult(map[string]any{"logged_out": true})
	})
}

func (s *Server) registerWhoami() {
	tool := mcp.NewTool("venue_whoami",
		mcp.WithDescription("Show the logged-in email, if any"),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		email, err := s.backend.CurrentUser()
		if err != nil {
			return jsonResult(map[string]any{"logged_in": false})
		}
		return jsonResult(map[string]any{"logged_in": true, "email": email})
	})
}

func (s *Server) registerBook() {
	tool := mcp.NewTool("venue_book",
		mcp.WithDescription("Create a pending booking. A confirmation code is sent to the user; confirm with venue_confirm"),
		mcp.WithString("venue_id",
			mcp.Required(),
			mcp.Description("Venue ID"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date as YYYY-MM-DD"),
		),
		mcp.WithNumber("guests",
			mcp.Required(),
			mcp.Description("Number of guests"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		venueID, err := request.RequireString("venue_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		guests, err := request.RequireInt("guests")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		b, _, err := s.backend.CreateBooking(ctx, app.BookingRequest{VenueID: venueID, EventDate: date, Guests: guests})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to book: %v", err)), nil
		}
		return jsonResult(bookingJSON(*b))
	})
}

func (s *Server) registerConfirm() {
	tool := mcp.NewTool("venue_confirm",
		mcp.WithDescription("Confirm a pending booking with the code sent to the user"),
		mcp.WithString("booking_id",
			mcp.Required(),
			mcp.Description("Booking ID returned by venue_book"),
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Confirmation code"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("booking_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		code, err := request.RequireString("code")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.backend.ConfirmBooking(ctx, id, code); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to confirm: %v", err)), nil
		}
		return jsonResult(map[string]any{"booking_id": id, "status": storage.BookingConfirmed})
	})
}

func (s *Server) registerBookings() {
	tool := mcp.NewTool("venue_bookings",
		mcp.WithDescription("List the logged-in user's bookings"),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bookings, err := s.backend.Bookings(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list bookings: %v", err)), nil
		}
		list := make([]map[string]any, 0, len(bookings))
		for _, b := range bookings {
			list = append(list, bookingJSON(b))
		}
		return jsonResult(map[string]any{"bookings": list})
	})
}

func (s *Server) registerSeed() {
	tool := mcp.NewTool("venue_seed",
		mcp.WithDescription("Import the sample catalog, or a TOML catalog file"),
		mcp.WithString("file",
			mcp.Description("Path to a catalog TOML file (default: built-in sample)"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := s.backend.Seed(ctx, request.GetString("file", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to seed: %v", err)), nil
		}
		return jsonResult(map[string]any{
			"venues":       stats.Venues,
			"reviews":      stats.Reviews,
			"testimonials": stats.Testimonials,
		})
	})
}

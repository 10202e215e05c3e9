package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/shelfctl/internal/client/auth"
	"github.com/iudanet/shelfctl/internal/client/books"
	"github.com/iudanet/shelfctl/internal/client/iocli"
	"github.com/iudanet/shelfctl/internal/client/loans"
	"github.com/iudanet/shelfctl/internal/client/storage"
	"github.com/iudanet/shelfctl/pkg/api"
)

// Cli ties the services to the command surface
type Cli struct {
	io       iocli.IO
	session  *auth.Session
	authSvc  *auth.Service
	books    *books.Service
	loans    *loans.Service
	tokens   storage.TokenStorage
	pageSize int
}

// New создает CLI поверх готовых сервисов
func New(io iocli.IO, session *auth.Session, authSvc *auth.Service, booksSvc *books.Service, loansSvc *loans.Service, tokens storage.TokenStorage, pageSize int) *Cli {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &Cli{
		io:       io,
		session:  session,
		authSvc:  authSvc,
		books:    booksSvc,
		loans:    loansSvc,
		tokens:   tokens,
		pageSize: pageSize,
	}
}

// Run dispatches one command
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "books":
		return c.runBooks(ctx, args)
	case "book":
		return c.runBook(ctx, args)
	case "search":
		return c.runSearch(ctx, args)
	case "categories":
		return c.runCategories(ctx)
	case "borrow":
		return c.runBorrow(ctx, args)
	case "return":
		return c.runReturn(ctx, args)
	case "loans":
		return c.runLoans(ctx, args)
	case "loan":
		return c.runLoan(ctx, args)
	case "profile":
		return c.runProfile(ctx, args)
	case "passwd":
		return c.runChangePassword(ctx)
	case "stats":
		return c.runStats(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// requireUser resolves the session and fails for anonymous callers.
// Authenticated does not mean the token is fresh — the gateway reacts
// to token rejection on the actual calls.
func (c *Cli) requireUser(ctx context.Context) (*api.User, error) {
	// Неудача уже отражена в состоянии сессии
	_ = c.session.FetchUser(ctx)

	if !c.session.IsAuthenticated() {
		return nil, fmt.Errorf("not authenticated. Please run 'shelfctl login' first")
	}

	return c.session.CurrentUser(), nil
}

// requireAdmin resolves the session and fails for non-admin callers
func (c *Cli) requireAdmin(ctx context.Context) (*api.User, error) {
	user, err := c.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("access denied: admin role required")
	}
	return user, nil
}

func PrintUsage() {
	fmt.Println("shelfctl - library management client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  shelfctl [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version           Show version information")
	fmt.Println("  --server URL        API base URL (default: http://localhost:8000/api, env: SHELFCTL_SERVER)")
	fmt.Println("  --db PATH           Path to local database (default: shelfctl.db)")
	fmt.Println("  --page-size N       Items per page for listings (default: 12)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                      Register a new account")
	fmt.Println("  login                         Login to the library server")
	fmt.Println("  logout                        Delete the local session")
	fmt.Println("  status                        Show authentication status")
	fmt.Println()
	fmt.Println("  books [FLAGS]                 Browse the catalog (--search, --category, --author,")
	fmt.Println("                                --language, --available, --page)")
	fmt.Println("  book ID                       Show one book")
	fmt.Println("  book add|update|delete ...    Manage the catalog (admin)")
	fmt.Println("  search QUERY                  Full-text catalog search")
	fmt.Println("  categories                    List catalog categories")
	fmt.Println()
	fmt.Println("  borrow BOOK_ID                Borrow a book")
	fmt.Println("  return LOAN_ID                Return a borrowed book")
	fmt.Println("  loans [FLAGS]                 List your loans (--status active|returned|overdue,")
	fmt.Println("                                --page, --all for admin, --overdue for admin)")
	fmt.Println("  loan ID                       Show one loan")
	fmt.Println()
	fmt.Println("  profile [update]              Show or update your profile")
	fmt.Println("  passwd                        Change your password")
	fmt.Println("  stats                         Library statistics (admin)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  shelfctl login")
	fmt.Println("  shelfctl books --search tolstoy --available")
	fmt.Println("  shelfctl borrow 42")
	fmt.Println("  shelfctl loans --status active")
}

// parseID разбирает позиционный числовой аргумент
func parseID(args []string, what string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing %s", what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", what, args[0])
	}
	return id, nil
}

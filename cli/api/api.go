package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/hackathon-signup/cli/event"
	"github.com/oaiiae/hackathon-signup/cli/storage"
	"github.com/oaiiae/hackathon-signup/csvexport"
	"github.com/oaiiae/hackathon-signup/datastores"
	"github.com/oaiiae/hackathon-signup/handlers"
	"github.com/oaiiae/hackathon-signup/mailer"
	"github.com/oaiiae/hackathon-signup/router"
	"github.com/oaiiae/hackathon-signup/sessions"
	"github.com/oaiiae/hackathon-signup/signup"
)

type ServerOptions struct {
	Host              string        `short:"H" doc:"host to listen on"                    default:""`
	Port              string        `short:"p" doc:"port to listen on"                    default:"8888"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers" default:"15s"`
}

func NewServer(options *ServerOptions, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              options.Host + ":" + options.Port,
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

type RouterOptions struct {
	EndpointsPrefix string `doc:"mount endpoints at a prefix"           default:"/api"`
	StaticDir       string `doc:"serve the web client from a directory" default:"client/dist"`
}

type AdminOptions struct {
	AdminPassword string        `doc:"shared password of the admin dashboard" default:"maratona2026"`
	SessionTTL    time.Duration `doc:"lifetime of an admin session"           default:"12h"`
}

type MailOptions struct {
	MailWebhook string        `doc:"post confirmation emails to this URL, log them only when empty"`
	MailTimeout time.Duration `doc:"time allowed to deliver a confirmation email" default:"10s"`
}

// Deps are the components the endpoints are built on.
type Deps struct {
	Stores   *storage.Stores
	Event    event.Settings
	Exporter *csvexport.Exporter
}

func NewMailer(options *MailOptions, log datastores.EmailLogStore) mailer.Sender {
	if options.MailWebhook == "" {
		return &mailer.LogSender{Log: log}
	}
	return &mailer.WebhookSender{URL: options.MailWebhook, Timeout: options.MailTimeout, Log: log}
}

func NewRouter(
	options *RouterOptions,
	admin *AdminOptions,
	mail *MailOptions,
	deps *Deps,
	version string,
	revision string,
	created string,
	logger *slog.Logger,
) http.Handler {
	title := deps.Event.Title
	buildinfoMetric := joinQuote("build_info{goversion=", runtime.Version(),
		",title=", title,
		",version=", version,
		",revision=", revision,
		",created=", created,
		"} 1\n")
	metriks := metrics.NewSet()
	errorHandler := ctxlog{}.errorHandler(logger)
	sessionCache := sessions.New(admin.SessionTTL)

	return router.New(title, version,
		func(w http.ResponseWriter, r *http.Request) {
			if _, err := deps.Stores.Registrations.LoadAll(r.Context()); err != nil {
				logger.Warn("store not ready", "err", err)
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		},
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, buildinfoMetric)
			metriks.WritePrometheus(w)
			metrics.WriteProcessMetrics(w)
		},
		router.SPA(options.StaticDir, options.EndpointsPrefix),
		router.OptUseMiddleware(
			ctxlog{}.loggerMiddleware(logger),
			meterRequests(metriks),
			ctxlog{}.recoverMiddleware(logger),
		),
		router.OptGroup(options.EndpointsPrefix,
			router.OptGroup("/hello", router.OptAutoRegister(&handlers.Hello{})),
			router.OptGroup("/registrations", router.OptAutoRegister(&handlers.Registrations{
				Service: &signup.Service{
					Store:   deps.Stores.Registrations,
					Mailer:  NewMailer(mail, deps.Stores.EmailLog),
					Rules:   signup.Rules{RequireInterest: deps.Event.RequireInterest},
					Metrics: metriks,
					Logger:  logger,
				},
				ErrorHandler: errorHandler,
			})),
			router.OptGroup("/admin", router.OptAutoRegister(&handlers.AdminSession{
				Password:     admin.AdminPassword,
				Sessions:     sessionCache,
				ErrorHandler: errorHandler,
			})),
			router.OptGroup("/admin",
				router.OptWith(func(api huma.API) func(huma.API) {
					return router.OptUseMiddleware(handlers.RequireSession(api, sessionCache))
				}),
				router.OptAutoRegister(&handlers.Admin{
					Store:        deps.Stores.Registrations,
					EmailLog:     deps.Stores.EmailLog,
					Exporter:     deps.Exporter,
					Capacity:     deps.Event.Capacity,
					ErrorHandler: errorHandler,
				}),
			),
		),
	)
}

// ctxlog is a [context.Context] key and acts as a virtual package for operations related to it.
type ctxlog struct{}

// loggerMiddleware returns a middleware that sets a [slog.Logger] in
// the [context.Context] and logs the request after it has terminated.
func (key ctxlog) loggerMiddleware(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logger := parent.With("x-request-id", ctx.Header("X-Request-Id"))

		start := time.Now()
		next(huma.WithValue(ctx, key, logger.WithGroup("op").With("id", ctx.Operation().OperationID)))

		logger.LogAttrs(context.Background(), slog.LevelInfo,
			joinSpace(ctx.Operation().Method, ctx.Operation().Path, ctx.Version().Proto),
			slog.String("from", ctx.RemoteAddr()),
			slog.String("ref", ctx.Header("Referer")),
			slog.String("ua", ctx.Header("User-Agent")),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// recoverMiddleware returns a middleware that recovers and logs the value from panic.
// Also sets status response to [http.StatusInternalServerError].
func (key ctxlog) recoverMiddleware(fallback *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			v := recover()
			if v != nil {
				logger, ok := ctx.Context().Value(key).(*slog.Logger)
				if !ok {
					logger = fallback
				}
				logger.LogAttrs(context.Background(), slog.LevelError, "panic occurred", slog.Any("recovered", v))
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

// errorHandler returns a function that gets the [slog.Logger] from [context.Context] and logs the error.
func (key ctxlog) errorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.GetStatus() / 100 {
			case 5: //nolint: mnd // 5XX HTTP Status Codes
				level = slog.LevelError
			case 4: //nolint: mnd // 4XX HTTP Status Codes
				level = slog.LevelWarn
			case 3: //nolint: mnd // 3XX HTTP Status Codes
				level = slog.LevelInfo
			}
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}

		logger, ok := ctx.Value(key).(*slog.Logger)
		if !ok {
			logger = fallback
		}
		logger.LogAttrs(context.Background(), level, "error occurred", attrs...)
	}
}

func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	type ref struct {
		*metrics.Counter
		*metrics.PrometheusHistogram
	}

	refs := sync.Map{}
	refsMu := sync.Mutex{}
	buckets := metrics.ExponentialBuckets(1e-3, 5, 6) //nolint: mnd // arbitrary

	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		uid := op.OperationID + http.StatusText(ctx.Status())
		val, ok := refs.Load(uid)
		if !ok {
			refsMu.Lock()
			val, ok = refs.Load(uid)
			if !ok {
				labels := joinQuote("{method=", op.Method, ",path=", op.Path, ",status=", strconv.Itoa(ctx.Status()), "}") //nolint: golines
				val = ref{
					set.NewCounter("http_requests_total" + labels),
					set.NewPrometheusHistogramExt("http_request_duration_seconds"+labels, buckets),
				}
				refs.Store(uid, val)
			}
			refsMu.Unlock()
		}
		valref := val.(ref) //nolint: errcheck // always true
		valref.Counter.Inc()
		valref.PrometheusHistogram.UpdateDuration(start)
	}
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }

// joinSpace is [strings.Join] with space as separator.
func joinSpace(elems ...string) string { return strings.Join(elems, ` `) }

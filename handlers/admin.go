package handlers

import (
	"bytes"
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/hackathon-signup/adminview"
	"github.com/oaiiae/hackathon-signup/csvexport"
	ds "github.com/oaiiae/hackathon-signup/datastores"
	"github.com/oaiiae/hackathon-signup/sessions"
)

// AdminSession exchanges the shared admin password for a session token.
type AdminSession struct {
	Password     string
	Sessions     *sessions.Cache
	ErrorHandler func(context.Context, error)
}

func (h *AdminSession) RegisterLogin(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/login",
		handlerWithErrorHandler(h.login, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusInternalServerError),
	)
}

type AdminLoginOutput struct {
	Body struct {
		Token string `json:"token" doc:"send as 'Authorization: Bearer <token>'"`
	}
}

func (h *AdminSession) login(_ context.Context, input *struct {
	Body struct {
		Password string `json:"password"`
	}
}) (*AdminLoginOutput, error) {
	if subtle.ConstantTimeCompare([]byte(input.Body.Password), []byte(h.Password)) != 1 {
		return nil, huma.Error401Unauthorized("invalid password")
	}
	token, err := h.Sessions.Issue()
	if err != nil {
		return nil, err
	}
	out := &AdminLoginOutput{}
	out.Body.Token = token
	return out, nil
}

func (h *AdminSession) RegisterLogout(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/logout", func(_ context.Context, input *struct {
		Authorization string `header:"Authorization"`
	}) (*struct{}, error) {
		h.Sessions.Revoke(bearer(input.Authorization))
		return nil, nil
	})
}

func bearer(header string) string {
	token, _ := strings.CutPrefix(header, "Bearer ")
	return token
}

// RequireSession returns a middleware rejecting requests without a valid
// session token. api is used to write the error response.
func RequireSession(api huma.API, s *sessions.Cache) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !s.Valid(bearer(ctx.Header("Authorization"))) {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or expired admin session")
			return
		}
		next(ctx)
	}
}

// Admin serves the registrations table of the admin dashboard.
type Admin struct {
	Store        ds.RegistrationsStore
	EmailLog     ds.EmailLogStore
	Exporter     *csvexport.Exporter
	Capacity     int
	ErrorHandler func(context.Context, error)
}

func (h *Admin) query(ctx context.Context, text, interest string) (all, filtered []*ds.Registration, err error) {
	i, err := parseInterest(interest)
	if err != nil {
		return nil, nil, err
	}
	all, err = h.Store.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return all, ds.Filter(all, ds.Query{Text: text, Interest: i}), nil
}

func (h *Admin) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/registrations",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type RegistrationsListOutput struct {
	Body []RegistrationModel
}

func (h *Admin) list(ctx context.Context, input *struct {
	Q        string `query:"q"        doc:"case-insensitive substring of name or email"`
	Interest string `query:"interest" doc:"challenge value, or 'all'"`
}) (*RegistrationsListOutput, error) {
	_, rs, err := h.query(ctx, input.Q, input.Interest)
	if err != nil {
		return nil, err
	}

	body := make([]RegistrationModel, 0, len(rs))
	for _, r := range rs {
		body = append(body, newRegistrationModel(r))
	}
	return &RegistrationsListOutput{Body: body}, nil
}

func (h *Admin) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/registrations/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError),
	)
}

type RegistrationsGetOutput struct {
	Body RegistrationModel
}

func (h *Admin) get(ctx context.Context, input *struct {
	ID string `path:"id" doc:"ID of the registration to get"`
}) (*RegistrationsGetOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	r, err := h.Store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return &RegistrationsGetOutput{Body: newRegistrationModel(r)}, nil
}

func (h *Admin) RegisterPut(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/registrations/{id}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

// RegistrationEdit replaces the editable fields. Fields are not re-validated.
type RegistrationEdit struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Interest  string     `json:"interest,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty" doc:"kept unchanged when omitted"`
}

func (h *Admin) put(ctx context.Context, input *struct {
	ID   string `path:"id" doc:"ID of the registration to edit"`
	Body RegistrationEdit
}) (*RegistrationsGetOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	interest, err := ds.ParseInterest(input.Body.Interest)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid interest", err)
	}

	editor := &adminview.Editor{Store: h.Store}
	if err := editor.Begin(ctx, id); err != nil {
		return nil, storeError(err)
	}
	err = editor.Edit(func(draft *ds.Registration) {
		draft.Name = input.Body.Name
		draft.Email = input.Body.Email
		draft.Interest = interest
		if input.Body.Timestamp != nil {
			draft.Timestamp = *input.Body.Timestamp
		}
	})
	if err != nil {
		return nil, err
	}
	saved, err := editor.Save(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return &RegistrationsGetOutput{Body: newRegistrationModel(saved)}, nil
}

func (h *Admin) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/registrations/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Admin) del(ctx context.Context, input *struct {
	ID string `path:"id" doc:"ID of the registration to delete"`
}) (*struct{}, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	return nil, storeError(h.Store.Remove(ctx, id))
}

func (h *Admin) RegisterExport(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/registrations.csv",
		handlerWithErrorHandler(h.export, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type RegistrationsExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *Admin) export(ctx context.Context, input *struct {
	Q        string `query:"q"        doc:"case-insensitive substring of name or email"`
	Interest string `query:"interest" doc:"challenge value, or 'all'"`
	Stats    bool   `query:"stats"    doc:"append the statistics block" default:"true"`
}) (*RegistrationsExportOutput, error) {
	_, rs, err := h.query(ctx, input.Q, input.Interest)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := h.Exporter.Write(&buf, rs, input.Stats); err != nil {
		return nil, err
	}
	return &RegistrationsExportOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: `attachment; filename="` + h.Exporter.Filename() + `"`,
		Body:               buf.Bytes(),
	}, nil
}

func (h *Admin) RegisterStats(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/stats",
		handlerWithErrorHandler(h.stats, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type StatsOutput struct {
	Body struct {
		Total            int            `json:"total"`
		Filtered         int            `json:"filtered"`
		Capacity         int            `json:"capacity"`
		OccupancyPercent int            `json:"occupancyPercent"`
		ByInterest       map[string]int `json:"byInterest" doc:"registrations per challenge value, empty key for none"`
	}
}

func (h *Admin) stats(ctx context.Context, input *struct {
	Q        string `query:"q"`
	Interest string `query:"interest"`
}) (*StatsOutput, error) {
	all, filtered, err := h.query(ctx, input.Q, input.Interest)
	if err != nil {
		return nil, err
	}

	s := adminview.Summarize(all, filtered, h.Capacity)
	out := &StatsOutput{}
	out.Body.Total = s.Total
	out.Body.Filtered = s.Filtered
	out.Body.Capacity = s.Capacity
	out.Body.OccupancyPercent = s.OccupancyPercent
	out.Body.ByInterest = make(map[string]int, len(s.ByInterest))
	for i, n := range s.ByInterest {
		out.Body.ByInterest[string(i)] = n
	}
	return out, nil
}

func (h *Admin) RegisterEmails(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/emails",
		handlerWithErrorHandler(h.emails, h.ErrorHandler),
		opErrors(http.StatusUnauthorized, http.StatusInternalServerError),
	)
}

type EmailLogModel struct {
	To        string    `json:"to"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status" enum:"sent,failed"`
	Timestamp time.Time `json:"timestamp"`
}

type EmailsOutput struct {
	Body []EmailLogModel
}

func (h *Admin) emails(ctx context.Context, _ *struct{}) (*EmailsOutput, error) {
	logs, err := h.EmailLog.List(ctx)
	if err != nil {
		return nil, err
	}
	body := make([]EmailLogModel, 0, len(logs))
	for _, l := range logs {
		body = append(body, EmailLogModel{
			To:        l.To,
			Name:      l.Name,
			Subject:   l.Subject,
			Status:    string(l.Status),
			Timestamp: l.Timestamp,
		})
	}
	return &EmailsOutput{Body: body}, nil
}

package controller

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"braincontrol/model"
	"braincontrol/service"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageController renders the dashboard page.
type PageController struct {
	users  *service.UserService
	agents *service.AgentService
	groups *service.GroupService
}

func NewPageController(users *service.UserService, agents *service.AgentService, groups *service.GroupService) *PageController {
	return &PageController{users: users, agents: agents, groups: groups}
}

type pageData struct {
	Users           []service.User
	Agents          []model.Agent
	Groups          []service.Group
	SelectedGroupID string

	// A section whose query failed stays in the loading state.
	UsersLoaded  bool
	AgentsLoaded bool
	GroupsLoaded bool

	// Messages is oldest first, ready for display.
	Messages []model.MessageView
}

// Index loads users, agents, groups and, when ?groupId is set, that group's
// thread. The loads run concurrently and a failed one leaves its section in
// the loading state.
func (p *PageController) Index(c *gin.Context) {
	ctx := c.Request.Context()
	data := pageData{SelectedGroupID: c.Query("groupId")}

	var g errgroup.Group
	g.Go(func() error {
		users, err := p.users.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("users.getAll: %w", err)
		}
		data.Users, data.UsersLoaded = users, true
		return nil
	})
	g.Go(func() error {
		agents, err := p.agents.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("agents.getAll: %w", err)
		}
		data.Agents, data.AgentsLoaded = agents, true
		return nil
	})
	g.Go(func() error {
		groups, err := p.groups.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("groups.getAll: %w", err)
		}
		data.Groups, data.GroupsLoaded = groups, true
		return nil
	})
	if data.SelectedGroupID != "" {
		g.Go(func() error {
			messages, err := p.groups.GetMessages(ctx, service.MessagesInput{ID: data.SelectedGroupID})
			if err != nil {
				return fmt.Errorf("groups.getMessages: %w", err)
			}
			data.Messages = oldestFirst(messages)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warnf("[%s] Dashboard partially loaded: %s", c.GetString("requestId"), err)
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func oldestFirst(messages []model.MessageView) []model.MessageView {
	out := make([]model.MessageView, len(messages))
	for i, m := range messages {
		out[len(messages)-1-i] = m
	}
	return out
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"relative": func(t time.Time) string { return humanize.Time(t) },
		"stamp":    func(t time.Time) string { return t.Local().Format("2006-01-02 15:04:05") },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"markdown": renderMarkdown,
		"agent": func(a model.Author) string {
			ref, _ := a.Agent()
			return ref.Name
		},
		"user": func(a model.Author) string {
			ref, _ := a.User()
			if ref.UserName == nil {
				return ""
			}
			return *ref.UserName
		},
		"isAssistant": func(r model.Role) bool { return r == model.RoleAssistant },
	}).ParseFS(templatesFS, "templates/*.html"))
}

// renderMarkdown turns message content into HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func renderMarkdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

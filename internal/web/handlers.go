package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// Web handlers

func (s *Server) handleIndex(c *gin.Context) {
	out, err := s.deps.ShowOutline.Execute(c.Request.Context(), usecase.ShowOutlineInput{})
	if err != nil {
		c.HTML(statusFor(err), "error.html", gin.H{"error": err.Error()})
		return
	}
	page, err := newBoardPage(out.Task, c.Query("id"))
	if err != nil {
		c.HTML(statusFor(err), "error.html", gin.H{"error": err.Error()})
		return
	}
	c.HTML(http.StatusOK, "index.html", page)
}

// API handlers

func (s *Server) handleGetOutline(c *gin.Context) {
	s.showTask(c, "")
}

func (s *Server) handleGetTask(c *gin.Context) {
	s.showTask(c, c.Param("id"))
}

func (s *Server) showTask(c *gin.Context, id string) {
	out, err := s.deps.ShowOutline.Execute(c.Request.Context(), usecase.ShowOutlineInput{TaskID: id})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.JSON)
}

func (s *Server) handleOutlineText(c *gin.Context) {
	out, err := s.deps.RenderOutline.Execute(c.Request.Context(), usecase.RenderOutlineInput{TaskID: c.Query("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.String(http.StatusOK, "%s\n", out.Text)
}

func (s *Server) handleReplaceText(c *gin.Context) {
	data, ok := s.readBody(c)
	if !ok {
		return
	}
	out, err := s.deps.ReplaceText.Execute(c.Request.Context(), usecase.ReplaceOutlineInput{Text: string(data)})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": out.Changed})
}

func (s *Server) handlePatchOutline(c *gin.Context) {
	s.patchTask(c, "")
}

func (s *Server) handlePatchTask(c *gin.Context) {
	s.patchTask(c, c.Param("id"))
}

// dryRunResponse is returned for PUT requests with ?dry_run=true.
type dryRunResponse struct {
	Task    *domain.TaskJSON `json:"task"`
	Before  string           `json:"before"`
	After   string           `json:"after"`
	Changed bool             `json:"changed"`
}

// readBody reads a request body of at most maxBodySize bytes.
// On failure the response is written and ok is false.
func (s *Server) readBody(c *gin.Context) (data []byte, ok bool) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err == nil {
		return data, true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorBody{
			Error:     fmt.Sprintf("request body exceeds maximum size of %d bytes", maxBodySize),
			RequestID: c.GetString(requestIDKey),
		})
		return nil, false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
	return nil, false
}

func (s *Server) patchTask(c *gin.Context, id string) {
	data, ok := s.readBody(c)
	if !ok {
		return
	}
	dryRun, _ := strconv.ParseBool(c.Query("dry_run"))

	out, err := s.deps.UpdateOutline.Execute(c.Request.Context(), usecase.UpdateOutlineInput{
		TaskID: id,
		Data:   data,
		DryRun: dryRun,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	if dryRun {
		c.JSON(http.StatusOK, dryRunResponse{Task: out.Task, Before: out.Before, After: out.After, Changed: out.Changed})
		return
	}
	c.JSON(http.StatusOK, out.Task)
}

// listedTask is a flat task entry of GET /api/tasks.
type listedTask struct {
	Tags     map[string]string `json:"tags"`
	ID       string            `json:"id,omitempty"`
	Line     string            `json:"line"`
	Status   domain.Status     `json:"status"`
	Contexts []string          `json:"contexts"`
	Projects []string          `json:"projects"`
	Depth    int               `json:"depth"`
	Children int               `json:"children"`
	IsDone   bool              `json:"is_done"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	in := usecase.ListTasksInput{
		ParentID: c.Query("parent"),
		Context:  c.Query("context"),
		Project:  c.Query("project"),
		Tags:     c.QueryArray("tag"),
		NoTags:   c.QueryArray("no_tag"),
	}
	for _, spec := range slices.Concat(in.Tags, in.NoTags) {
		if _, err := domain.ParseTagSpec(spec); err != nil {
			s.writeError(c, err)
			return
		}
	}
	for _, raw := range c.QueryArray("status") {
		st := domain.Status(raw)
		if !slices.Contains(domain.BoardStatuses(), st) {
			s.writeError(c, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw))
			return
		}
		in.Statuses = append(in.Statuses, st)
	}
	if raw := c.Query("depth"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil || depth < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: "depth must be a non-negative integer"})
			return
		}
		in.MaxDepth = depth
	}
	in.HideDone, _ = strconv.ParseBool(c.Query("hide_done"))

	out, err := s.deps.ListTasks.Execute(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	tasks := make([]listedTask, 0, len(out.Tasks))
	for _, lt := range out.Tasks {
		id, _ := lt.Task.PeekID()
		tasks = append(tasks, listedTask{
			ID:       id,
			Line:     lt.Task.Line(),
			Depth:    lt.Depth,
			Status:   lt.Task.Status(),
			IsDone:   lt.Task.IsDone(),
			Contexts: lt.Task.Contexts(),
			Projects: lt.Task.Projects(),
			Tags:     lt.Task.Tags(),
			Children: len(lt.Task.Children()),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

type addTaskRequest struct {
	ParentID string `json:"parent_id"`
	Line     string `json:"line"`
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
		return
	}
	out, err := s.deps.AddTask.Execute(c.Request.Context(), usecase.AddTaskInput{ParentID: req.ParentID, Line: req.Line})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": out.ID, "line": out.Line})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleSetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: err.Error(), RequestID: c.GetString(requestIDKey)})
		return
	}
	out, err := s.deps.SetStatus.Execute(c.Request.Context(), usecase.SetStatusInput{
		TaskID: c.Param("id"),
		Status: domain.Status(req.Status),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": out.Line, "status": out.Status})
}

type boardCard struct {
	ID       string        `json:"id,omitempty"`
	Line     string        `json:"line"`
	Status   domain.Status `json:"status"`
	Children int           `json:"children"`
	Done     int           `json:"done"`
}

type boardColumn struct {
	Status domain.Status `json:"status"`
	Cards  []boardCard   `json:"cards"`
}

func (s *Server) handleBoard(c *gin.Context) {
	out, err := s.deps.StatusBoard.Execute(c.Request.Context(), usecase.StatusBoardInput{TaskID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	columns := make([]boardColumn, 0, len(out.Columns))
	for _, col := range out.Columns {
		bc := boardColumn{Status: col.Status, Cards: make([]boardCard, 0, len(col.Cards))}
		for _, card := range col.Cards {
			id, _ := card.Task.PeekID()
			bc.Cards = append(bc.Cards, boardCard{
				ID:       id,
				Line:     card.Task.Line(),
				Status:   card.Task.Status(),
				Children: card.Children,
				Done:     card.Done,
			})
		}
		columns = append(columns, bc)
	}
	id, _ := out.Task.PeekID()
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"line":    out.Task.Line(),
		"columns": columns,
	})
}

func (s *Server) handleSchema(c *gin.Context) {
	if len(s.deps.Schema) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Error: "no schema configured"})
		return
	}
	c.Data(http.StatusOK, "application/schema+json", s.deps.Schema)
}

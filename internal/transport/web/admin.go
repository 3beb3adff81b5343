package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/meal-ticket/internal"
	"github.com/frahmantamala/meal-ticket/internal/employee"
	"github.com/frahmantamala/meal-ticket/internal/transport"
)

//go:embed templates/admin.html
var templateFS embed.FS

var adminTemplate = template.Must(template.ParseFS(templateFS, "templates/admin.html"))

// DirectoryAPI is the roster surface the admin page needs.
type DirectoryAPI interface {
	ListEmployees() ([]*employee.Employee, error)
	CreateEmployee(dto employee.CreateEmployeeDTO) (*employee.Employee, error)
	DeleteEmployee(id int64) error
}

// AdminHandler serves the roster page and its two form actions. Every
// action lands back on the listing page; input problems (missing fields,
// duplicate code) are logged server-side and never shown to the user.
type AdminHandler struct {
	*transport.BaseHandler
	Directory DirectoryAPI
}

func NewAdminHandler(directory DirectoryAPI) *AdminHandler {
	return &AdminHandler{
		BaseHandler: transport.NewBaseHandler(nil),
		Directory:   directory,
	}
}

type adminPageData struct {
	Employees []*employee.Employee
}

func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.ListEmployees()
	if err != nil {
		h.Logger.Error("Index: failed to list employees", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load employees")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := adminTemplate.Execute(w, adminPageData{Employees: employees}); err != nil {
		h.Logger.Error("Index: template render failed", "error", err)
	}
}

func (h *AdminHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	dto := employee.CreateEmployeeDTO{
		Name: r.FormValue("name"),
		Code: r.FormValue("code"),
	}

	// missing fields and duplicate codes both re-render the page unchanged;
	// only the duplicate gets a server-side trace
	if _, err := h.Directory.CreateEmployee(dto); err != nil {
		switch {
		case errors.Is(err, employee.ErrDuplicateCode):
			h.Logger.Warn("AddEmployee: code already exists", "code", dto.Code)
		case errors.Is(err, internal.ErrMissingFields):
		default:
			h.Logger.Error("AddEmployee: failed", "error", err)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Logger.Warn("DeleteEmployee: invalid id", "id", chi.URLParam(r, "id"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.Directory.DeleteEmployee(id); err != nil {
		h.Logger.Error("DeleteEmployee: failed", "error", err, "employee_id", id)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

package chi

import (
	"time"

	"github.com/kailas-cloud/contentd/internal/domain"
)

type blogDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Author    string    `json:"author,omitempty"`
	Category  string    `json:"category,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func blogToDTO(b *domain.Blog) blogDTO {
	return blogDTO{
		ID:        b.ID,
		Title:     b.Title,
		Slug:      b.Slug,
		Author:    b.Author,
		Category:  b.Category,
		Thumbnail: b.Thumbnail,
		Content:   b.Content,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func blogsToDTO(blogs []domain.Blog) []blogDTO {
	out := make([]blogDTO, len(blogs))
	for i := range blogs {
		out[i] = blogToDTO(&blogs[i])
	}
	return out
}

type blogRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content"`
	Status    string `json:"status"`
}

func (r *blogRequest) toDomain(id int64) *domain.Blog {
	return &domain.Blog{
		ID:        id,
		Title:     r.Title,
		Slug:      r.Slug,
		Author:    r.Author,
		Category:  r.Category,
		Thumbnail: r.Thumbnail,
		Content:   r.Content,
		Status:    r.Status,
	}
}

type projectDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      string    `json:"year,omitempty"`
	Area      string    `json:"area,omitempty"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func projectToDTO(p *domain.Project) projectDTO {
	return projectDTO{
		ID:        p.ID,
		Title:     p.Title,
		Year:      p.Year,
		Area:      p.Area,
		Content:   p.Content,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func projectsToDTO(projects []domain.Project) []projectDTO {
	out := make([]projectDTO, len(projects))
	for i := range projects {
		out[i] = projectToDTO(&projects[i])
	}
	return out
}

type projectRequest struct {
	Title   string `json:"title"`
	Year    string `json:"year"`
	Area    string `json:"area"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

func (r *projectRequest) toDomain(id int64) *domain.Project {
	return &domain.Project{
		ID:      id,
		Title:   r.Title,
		Year:    r.Year,
		Area:    r.Area,
		Content: r.Content,
		Status:  r.Status,
	}
}

type offeringDTO struct {
	ID          int64  `json:"id"`
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Features    string `json:"features,omitempty"`
	Price       string `json:"price,omitempty"`
}

func offeringToDTO(o *domain.Offering) offeringDTO {
	return offeringDTO{
		ID:          o.ID,
		Icon:        o.Icon,
		Title:       o.Title,
		Description: o.Description,
		Features:    o.Features,
		Price:       o.Price,
	}
}

func offeringsToDTO(offerings []domain.Offering) []offeringDTO {
	out := make([]offeringDTO, len(offerings))
	for i := range offerings {
		out[i] = offeringToDTO(&offerings[i])
	}
	return out
}

type offeringRequest struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Features    string `json:"features"`
	Price       string `json:"price"`
}

func (r *offeringRequest) toDomain(id int64) *domain.Offering {
	return &domain.Offering{
		ID:          id,
		Icon:        r.Icon,
		Title:       r.Title,
		Description: r.Description,
		Features:    r.Features,
		Price:       r.Price,
	}
}

type contactDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	ServiceID int64      `json:"serviceId,omitempty"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	Note      string     `json:"note,omitempty"`
	HandledBy string     `json:"handledBy,omitempty"`
	HandledAt *time.Time `json:"handledAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func contactToDTO(c *domain.Contact) contactDTO {
	dto := contactDTO{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		ServiceID: c.ServiceID,
		Message:   c.Message,
		Status:    c.Status,
		Note:      c.Note,
		HandledBy: c.HandledBy,
		CreatedAt: c.CreatedAt,
	}
	if !c.HandledAt.IsZero() {
		t := c.HandledAt
		dto.HandledAt = &t
	}
	return dto
}

func contactsToDTO(contacts []domain.Contact) []contactDTO {
	out := make([]contactDTO, len(contacts))
	for i := range contacts {
		out[i] = contactToDTO(&contacts[i])
	}
	return out
}

type contactRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	ServiceID int64  `json:"serviceId"`
	Message   string `json:"message"`
}

type contactTransitionRequest struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	HandledBy string `json:"handledBy"`
}

type askRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

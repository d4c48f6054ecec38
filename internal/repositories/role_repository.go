package repositories

import (
	"github.com/askforum/backend/internal/models"
	"gorm.io/gorm"
)

// RoleRepository defines the interface for role data operations.
type RoleRepository interface {
	CreateRole(role *models.Role) error
	GetRoleByID(id uint) (*models.Role, error)
	GetRoleByKind(kind models.RoleKind) (*models.Role, error)
	GetRoles() ([]models.Role, error)
	UpdateRole(role *models.Role) error
	DeleteRole(id uint) error
	EnsureRole(title string, kind models.RoleKind) (*models.Role, error)
}

// PostgresRoleRepository implements RoleRepository for PostgreSQL.
type PostgresRoleRepository struct {
	db *gorm.DB
}

// NewPostgresRoleRepository creates a new PostgresRoleRepository.
func NewPostgresRoleRepository(db *gorm.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// CreateRole creates a new role.
func (r *PostgresRoleRepository) CreateRole(role *models.Role) error {
	return r.db.Create(role).Error
}

// GetRoleByID retrieves a role by ID.
func (r *PostgresRoleRepository) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByKind retrieves a role by its kind. New users get the first row of
// kind "user".
func (r *PostgresRoleRepository) GetRoleByKind(kind models.RoleKind) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("kind = ?", kind).Order("id").First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoles retrieves all roles.
func (r *PostgresRoleRepository) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// UpdateRole updates an existing role.
func (r *PostgresRoleRepository) UpdateRole(role *models.Role) error {
	return r.db.Save(role).Error
}

// DeleteRole deletes a role by ID.
func (r *PostgresRoleRepository) DeleteRole(id uint) error {
	return r.db.Delete(&models.Role{}, id).Error
}

// EnsureRole creates the role if no row with the title exists yet. Seeding
// runs on every startup, so this must be idempotent.
func (r *PostgresRoleRepository) EnsureRole(title string, kind models.RoleKind) (*models.Role, error) {
	role := models.Role{Title: title, Kind: kind}
	err := r.db.Where(models.Role{Title: title}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

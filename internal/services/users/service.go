// Package users provides the user management service on top of the document database.
package users

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/unifiedui/user-service/internal/core/docdb"
	"github.com/unifiedui/user-service/internal/domain/errors"
	"github.com/unifiedui/user-service/internal/domain/models"
)

// DefaultPageSize is the page size used when an offset is given without a limit.
const DefaultPageSize int64 = 100

const (
	resourceUser = "user"
	tracerName   = "github.com/unifiedui/user-service/internal/services/users"
)

// ListOptions selects which users List returns.
// Field and Value filter by equality and cannot be combined with paging.
// Offset and Limit page through the collection; an Offset without a Limit
// returns DefaultPageSize users. With neither every user is returned.
type ListOptions struct {
	Field  string
	Value  string
	Offset int64
	Limit  int64
}

// ListResult holds the users returned by List.
type ListResult struct {
	Users  []*models.User
	Total  int64
	Offset int64
	Limit  int64
}

// Service provides user management operations.
type Service interface {
	// Create validates and inserts a new user, setting its generated ID.
	Create(ctx context.Context, user *models.User) error

	// Get retrieves a user by its hex ID.
	Get(ctx context.Context, id string) (*models.User, error)

	// GetByName retrieves the first user with the given name.
	GetByName(ctx context.Context, name string) (*models.User, error)

	// List returns users filtered by field, paged, or all of them.
	List(ctx context.Context, opts *ListOptions) (*ListResult, error)

	// UpdateField sets one field of a user. It reports whether the document changed.
	UpdateField(ctx context.Context, id, field, value string) (bool, error)

	// UpdateFieldByName looks a user up by name and sets one of its fields.
	UpdateFieldByName(ctx context.Context, name, field, value string) (bool, error)

	// Delete removes a user by its hex ID.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every user and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// CreateIndex creates an ascending index on a user field.
	CreateIndex(ctx context.Context, field string) (string, error)

	// Healthy reports whether the users database is reachable.
	Healthy(ctx context.Context) bool
}

// service implements the Service interface.
type service struct {
	docDBClient docdb.Client
	validate    *validator.Validate
	tracer      trace.Tracer
	fieldRules  map[models.UserField]string
}

// Config holds the configuration for the users service.
type Config struct {
	DocDBClient docdb.Client
	Validator   *validator.Validate
	// Tracer defaults to the global OpenTelemetry tracer provider.
	Tracer trace.Tracer
}

// NewService creates a new users service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.DocDBClient == nil {
		return nil, fmt.Errorf("docdb client is required")
	}

	validate := cfg.Validator
	if validate == nil {
		validate = validator.New()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &service{
		docDBClient: cfg.DocDBClient,
		validate:    validate,
		tracer:      tracer,
		fieldRules:  userFieldRules(),
	}, nil
}

func (s *service) Create(ctx context.Context, user *models.User) (err error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer func() { endSpan(span, err) }()

	if user == nil {
		return errors.NewValidationError("user is required", "")
	}
	if !user.ID.IsZero() {
		return errors.NewValidationError("invalid user", "id is assigned by the server")
	}
	if err := s.validate.Struct(user); err != nil {
		return errors.NewValidationError("invalid user", describeValidation(err))
	}

	if err := s.docDBClient.Users().InsertUser(ctx, user); err != nil {
		return errors.NewInternalError("failed to create user", err)
	}

	span.SetAttributes(attribute.String("user.id", user.ID.Hex()))
	log.Info().Str("user_id", user.ID.Hex()).Msg("user created")
	return nil
}

func (s *service) Get(ctx context.Context, id string) (_ *models.User, err error) {
	ctx, span := s.startSpan(ctx, "Get", attribute.String("user.id", id))
	defer func() { endSpan(span, err) }()

	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.docDBClient.Users().GetUserByID(ctx, objectID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(resourceUser, id)
	}
	return user, nil
}

func (s *service) GetByName(ctx context.Context, name string) (_ *models.User, err error) {
	ctx, span := s.startSpan(ctx, "GetByName")
	defer func() { endSpan(span, err) }()

	if name == "" {
		return nil, errors.NewValidationError("name is required", "")
	}

	user, err := s.docDBClient.Users().GetUserByName(ctx, name)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user by name", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(resourceUser, name)
	}
	return user, nil
}

func (s *service) List(ctx context.Context, opts *ListOptions) (_ *ListResult, err error) {
	ctx, span := s.startSpan(ctx, "List")
	defer func() { endSpan(span, err) }()

	if opts == nil {
		opts = &ListOptions{}
	}
	if opts.Offset < 0 || opts.Limit < 0 {
		return nil, errors.NewValidationError("invalid paging", "offset and limit must not be negative")
	}
	paged := opts.Offset > 0 || opts.Limit > 0
	if opts.Field == "" && opts.Value != "" {
		return nil, errors.NewValidationError("invalid filter", "value requires field")
	}
	if opts.Field != "" && paged {
		return nil, errors.NewValidationError("invalid filter", "field filter cannot be combined with offset or limit")
	}

	usersColl := s.docDBClient.Users()

	if opts.Field != "" {
		field, err := s.parseField(opts.Field)
		if err != nil {
			return nil, err
		}
		if _, err := field.Convert(opts.Value); err != nil {
			return nil, errors.NewValidationError("invalid field value", err.Error())
		}
		span.SetAttributes(attribute.String("users.filter_field", field.String()))

		users, err := usersColl.GetUsersByField(ctx, field, opts.Value)
		if err != nil {
			return nil, errors.NewInternalError("failed to list users", err)
		}
		return &ListResult{Users: users, Total: int64(len(users))}, nil
	}

	if paged {
		limit := opts.Limit
		if limit == 0 {
			limit = DefaultPageSize
		}
		span.SetAttributes(attribute.Int64("users.offset", opts.Offset), attribute.Int64("users.limit", limit))

		var (
			users []*models.User
			total int64
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			page, err := usersColl.GetUsersPage(gctx, opts.Offset, limit)
			if err != nil {
				return errors.NewInternalError("failed to list users", err)
			}
			users = page
			return nil
		})
		g.Go(func() error {
			count, err := usersColl.CountUsers(gctx)
			if err != nil {
				return errors.NewInternalError("failed to count users", err)
			}
			total = count
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return &ListResult{Users: users, Total: total, Offset: opts.Offset, Limit: limit}, nil
	}

	users, err := usersColl.GetAllUsers(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list users", err)
	}
	return &ListResult{Users: users, Total: int64(len(users))}, nil
}

func (s *service) UpdateField(ctx context.Context, id, field, value string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateField", attribute.String("user.id", id), attribute.String("user.field", field))
	defer func() { endSpan(span, err) }()

	objectID, err := parseID(id)
	if err != nil {
		return false, err
	}
	userField, err := s.validateFieldValue(field, value)
	if err != nil {
		return false, err
	}

	usersColl := s.docDBClient.Users()

	modified, err := usersColl.UpdateUser(ctx, objectID, userField, value)
	if err != nil {
		return false, errors.NewInternalError("failed to update user", err)
	}
	if modified {
		return true, nil
	}

	// Nothing changed: either the user does not exist or the value was already set.
	existing, err := usersColl.GetUserByID(ctx, objectID)
	if err != nil {
		return false, errors.NewInternalError("failed to get user", err)
	}
	if existing == nil {
		return false, errors.NewNotFoundError(resourceUser, id)
	}
	return false, nil
}

func (s *service) UpdateFieldByName(ctx context.Context, name, field, value string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateFieldByName", attribute.String("user.field", field))
	defer func() { endSpan(span, err) }()

	userField, err := s.validateFieldValue(field, value)
	if err != nil {
		return false, err
	}

	user, err := s.GetByName(ctx, name)
	if err != nil {
		return false, err
	}

	modified, err := s.docDBClient.Users().UpdateUser(ctx, user.ID, userField, value)
	if err != nil {
		return false, errors.NewInternalError("failed to update user", err)
	}
	return modified, nil
}

func (s *service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "Delete", attribute.String("user.id", id))
	defer func() { endSpan(span, err) }()

	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.docDBClient.Users().DeleteUserByID(ctx, objectID)
	if err != nil {
		return errors.NewInternalError("failed to delete user", err)
	}
	if !deleted {
		return errors.NewNotFoundError(resourceUser, id)
	}

	log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *service) DeleteAll(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteAll")
	defer func() { endSpan(span, err) }()

	count, err := s.docDBClient.Users().DeleteAllUsers(ctx)
	if err != nil {
		return 0, errors.NewInternalError("failed to delete users", err)
	}

	log.Warn().Int64("deleted_count", count).Msg("all users deleted")
	return count, nil
}

func (s *service) CreateIndex(ctx context.Context, field string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "CreateIndex", attribute.String("user.field", field))
	defer func() { endSpan(span, err) }()

	userField, err := s.parseField(field)
	if err != nil {
		return "", err
	}

	usersColl := s.docDBClient.Users()

	var name string
	if userField == models.UserFieldName {
		name, err = usersColl.CreateIndexOnNameField(ctx)
	} else {
		name, err = usersColl.CreateIndexOnField(ctx, s.docDBClient.UsersRaw(), userField.String())
	}
	if err != nil {
		return "", errors.NewInternalError("failed to create index", err)
	}

	log.Info().Str("field", userField.String()).Str("index", name).Msg("index created")
	return name, nil
}

func (s *service) Healthy(ctx context.Context) bool {
	return s.docDBClient.Users().CheckConnection(ctx)
}

func (s *service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "users."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *service) parseField(field string) (models.UserField, error) {
	userField, err := models.ParseUserField(field)
	if err != nil {
		return "", errors.NewValidationError("invalid field", err.Error())
	}
	return userField, nil
}

// validateFieldValue checks value against the validation rules of the field.
func (s *service) validateFieldValue(field, value string) (models.UserField, error) {
	userField, err := s.parseField(field)
	if err != nil {
		return "", err
	}

	converted, err := userField.Convert(value)
	if err != nil {
		return "", errors.NewValidationError("invalid field value", err.Error())
	}

	if rule, ok := s.fieldRules[userField]; ok {
		if err := s.validate.Var(converted, rule); err != nil {
			return "", errors.NewValidationError("invalid field value", fmt.Sprintf("%s: %s", userField, describeValidation(err)))
		}
	}
	return userField, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.NewValidationError("invalid user id", id)
	}
	return objectID, nil
}

// userFieldRules maps each user field to the validate tag declared on models.User.
func userFieldRules() map[models.UserField]string {
	rules := make(map[models.UserField]string)

	t := reflect.TypeOf(models.User{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("bson"), ",", 2)[0]
		rule := f.Tag.Get("validate")
		if rule == "" {
			continue
		}
		if field := models.UserField(name); field.IsValid() {
			rules[field] = rule
		}
	}
	return rules
}

func describeValidation(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Field() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		} else {
			messages = append(messages, fmt.Sprintf("failed on %s", fe.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}

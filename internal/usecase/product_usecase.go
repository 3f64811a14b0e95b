package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doafacil/doafacil/internal/kafka"
	"github.com/doafacil/doafacil/internal/models"
	"github.com/doafacil/doafacil/internal/repo/mongodb"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductUsecase holds the donation listing rules: field validation,
// ownership checks, and the available → reciever → donated_at lifecycle.
type ProductUsecase interface {
	Create(ctx context.Context, rctx models.RequestContext, input models.ProductInput) (*models.Product, error)
	Index(ctx context.Context, page, limit int64) ([]*models.PopulatedProduct, error)
	Show(ctx context.Context, id string) (*models.PopulatedProduct, error)
	Update(ctx context.Context, rctx models.RequestContext, id string, input models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	ShowUserProducts(ctx context.Context, rctx models.RequestContext) ([]*models.Product, error)
	ShowRecieverProducts(ctx context.Context, rctx models.RequestContext) ([]*models.Product, error)
	Schedule(ctx context.Context, rctx models.RequestContext, id string) (string, error)
	ConcludeDonation(ctx context.Context, rctx models.RequestContext, id string) (string, error)
}

type productUsecase struct {
	products  mongodb.ProductRepository
	users     mongodb.UserRepository
	userUC    UserUsecase
	publisher kafka.Publisher
	validate  *validator.Validate
	log       *zap.Logger
}

func NewProductUsecase(
	products mongodb.ProductRepository,
	users mongodb.UserRepository,
	userUC UserUsecase,
	publisher kafka.Publisher,
	validate *validator.Validate,
	log *zap.Logger,
) ProductUsecase {
	return &productUsecase{
		products:  products,
		users:     users,
		userUC:    userUC,
		publisher: publisher,
		validate:  validate,
		log:       log,
	}
}

// requiredFieldMessages maps each ProductInput field to its user-facing
// message. Only the first failing field is reported.
var requiredFieldMessages = map[string]string{
	"Name":        "O nome é obrigatório.",
	"Description": "A descrição é obrigatória.",
	"State":       "O estado é obrigatório.",
	"PurchasedAt": "A data de compra é obrigatória.",
	"Images":      "A imagem é obrigatória.",
}

func (uc *productUsecase) validateInput(input models.ProductInput) error {
	err := uc.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := requiredFieldMessages[verrs[0].StructField()]; ok {
			return models.NewValidationError(msg)
		}
	}
	return models.NewValidationError(err.Error())
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError("ID Inválido: " + id)
	}
	return oid, nil
}

func (uc *productUsecase) Create(ctx context.Context, rctx models.RequestContext, input models.ProductInput) (*models.Product, error) {
	user, err := uc.userUC.GetUser(ctx, rctx)
	if err != nil {
		return nil, err
	}

	input.Images = rctx.Filenames()
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		State:       input.State,
		PurchasedAt: input.PurchasedAt,
		Owner:       user.ID,
		Available:   true,
		Images:      input.Images,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	uc.publish(ctx, models.EventProductCreated, product, user.ID)
	return product, nil
}

func (uc *productUsecase) Index(ctx context.Context, page, limit int64) ([]*models.PopulatedProduct, error) {
	// page/limit are taken as-is; sanity is the caller's responsibility.
	products, err := uc.products.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return uc.populate(ctx, products)
}

func (uc *productUsecase) Show(ctx context.Context, id string) (*models.PopulatedProduct, error) {
	// Validate the id before touching the store.
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	product, err := uc.getProduct(ctx, oid)
	if err != nil {
		return nil, err
	}

	populated, err := uc.populate(ctx, []*models.Product{product})
	if err != nil {
		return nil, err
	}
	return populated[0], nil
}

func (uc *productUsecase) Update(ctx context.Context, rctx models.RequestContext, id string, input models.ProductInput) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	// Any authenticated user may update; ownership is not checked here.
	if _, err := uc.userUC.GetUser(ctx, rctx); err != nil {
		return nil, err
	}

	input.Images = rctx.Filenames()
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	product, err := uc.getProduct(ctx, oid)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.PurchasedAt = input.PurchasedAt
	// state is validated above but never persisted by update.
	product.Images = append(product.Images, input.Images...)

	if err := uc.products.Update(ctx, product); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Produto Não encontrado")
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (uc *productUsecase) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	if _, err := uc.getProduct(ctx, oid); err != nil {
		return err
	}

	if err := uc.products.Delete(ctx, oid); err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (uc *productUsecase) ShowUserProducts(ctx context.Context, rctx models.RequestContext) ([]*models.Product, error) {
	user, err := uc.userUC.GetUser(ctx, rctx)
	if err != nil {
		return nil, err
	}

	products, err := uc.products.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list owned products: %w", err)
	}
	if len(products) == 0 {
		return nil, models.NewNotFoundError("A lista de Produtos está vazia")
	}
	return products, nil
}

func (uc *productUsecase) ShowRecieverProducts(ctx context.Context, rctx models.RequestContext) ([]*models.Product, error) {
	user, err := uc.userUC.GetUser(ctx, rctx)
	if err != nil {
		return nil, err
	}

	products, err := uc.products.ListByReciever(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list scheduled products: %w", err)
	}
	if len(products) == 0 {
		// Unlike ShowUserProducts this reports 422, kept for API parity.
		return nil, models.NewValidationError("A lista de Produtos está vazia")
	}
	return products, nil
}

func (uc *productUsecase) Schedule(ctx context.Context, rctx models.RequestContext, id string) (string, error) {
	user, err := uc.userUC.GetUser(ctx, rctx)
	if err != nil {
		return "", err
	}

	oid, err := parseID(id)
	if err != nil {
		return "", err
	}

	product, err := uc.getProduct(ctx, oid)
	if err != nil {
		return "", err
	}

	if !product.Available {
		return "", models.NewValidationError("Produto Não Disponível")
	}
	// Scheduling is for interested users only; the owner is rejected.
	if product.Owner == user.ID {
		return "", models.NewValidationError("O proprietário não pode agendar a visita do próprio produto.")
	}

	if err := uc.products.SetReciever(ctx, oid, user.ID); err != nil {
		return "", fmt.Errorf("set reciever: %w", err)
	}

	owner, err := uc.users.GetByID(ctx, product.Owner)
	if err != nil {
		return "", fmt.Errorf("get owner: %w", err)
	}

	uc.publish(ctx, models.EventVisitScheduled, product, user.ID)
	return fmt.Sprintf("A visita foi agendada com Sucesso, entre em contato com %s, pelo telefone, %s", owner.Name, owner.Phone), nil
}

func (uc *productUsecase) ConcludeDonation(ctx context.Context, rctx models.RequestContext, id string) (string, error) {
	user, err := uc.userUC.GetUser(ctx, rctx)
	if err != nil {
		return "", err
	}

	oid, err := parseID(id)
	if err != nil {
		return "", err
	}

	product, err := uc.getProduct(ctx, oid)
	if err != nil {
		return "", err
	}

	if !product.Available {
		return "", models.NewValidationError("Produto Não Disponível")
	}
	if product.Owner != user.ID {
		return "", models.NewValidationError("Usuário Não é o proprietário")
	}

	if err := uc.products.MarkDonated(ctx, oid, time.Now()); err != nil {
		return "", fmt.Errorf("mark donated: %w", err)
	}

	uc.publish(ctx, models.EventDonationConcluded, product, user.ID)
	return "Doação concluída com Sucesso.", nil
}

func (uc *productUsecase) getProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := uc.products.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewNotFoundError("Produto Não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// populate resolves owner and reciever references in one user lookup.
// User.Password carries `json:"-"`, so serialized results exclude it.
func (uc *productUsecase) populate(ctx context.Context, products []*models.Product) ([]*models.PopulatedProduct, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range products {
		add(p.Owner)
		if p.Reciever != nil {
			add(*p.Reciever)
		}
	}

	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate users: %w", err)
	}

	populated := make([]*models.PopulatedProduct, 0, len(products))
	for _, p := range products {
		pp := &models.PopulatedProduct{
			Product: p,
			Owner:   users[p.Owner],
		}
		if p.Reciever != nil {
			pp.Reciever = users[*p.Reciever]
		}
		populated = append(populated, pp)
	}
	return populated, nil
}

// publish is best effort; a broker hiccup must not fail the request.
func (uc *productUsecase) publish(ctx context.Context, eventType string, product *models.Product, actor primitive.ObjectID) {
	event := models.ProductEvent{
		Type:      eventType,
		ProductID: product.ID.Hex(),
		OwnerID:   product.Owner.Hex(),
		ActorID:   actor.Hex(),
		At:        time.Now(),
	}
	if err := uc.publisher.PublishProductEvent(ctx, event); err != nil {
		uc.log.Warn("publish product event failed",
			zap.String("type", eventType),
			zap.String("product_id", event.ProductID),
			zap.Error(err),
		)
	}
}

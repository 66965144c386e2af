package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"contact-management/cache"
	"contact-management/db"
	"contact-management/logger"
	"contact-management/response"
	"contact-management/services"
	"contact-management/validator"
)

var (
	contactService *services.ContactService
	log            *logger.Logger
)

func init() {
	_ = godotenv.Load()

	var err error
	log, err = logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}

	database, err := db.InitDB()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to DB: %v", err))
	}

	contactService = services.NewContactService(database, log)
	contactService.Audit = services.NewAuditLogger(log)
	contactService.Region = os.Getenv("PHONE_DEFAULT_REGION")

	redisClient, err := cache.InitRedis()
	if err != nil {
		log.Warn("Redis unavailable, running without contact cache", "error", err)
	} else {
		contactService.Cache = cache.NewContactCache(redisClient, log)
	}
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case http.MethodPost:
		if strings.HasSuffix(req.Path, "/register") {
			return handleCreate(ctx, req)
		}
	case http.MethodGet:
		if strings.HasSuffix(req.Path, "/search") {
			return handleSearch(ctx, req)
		}
	case http.MethodPut:
		return handleUpdate(ctx, req)
	case http.MethodDelete:
		return handleDelete(ctx, req)
	}
	return respond(response.BadRequest("Rota não encontrada"))
}

func handleCreate(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var input validator.CreateContactInput
	if err := validator.Decode(req.Body, &input); err != nil {
		return respond(response.CreateFailed(err))
	}

	contact, err := contactService.CreateContact(ctx, &input)
	if err != nil {
		log.Warn("create contact failed", "error", err)
		return respond(response.CreateFailed(err))
	}
	return respond(response.Created(contact))
}

func handleSearch(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	input := validator.SearchContactInput{
		Name:  req.QueryStringParameters["name"],
		Phone: req.QueryStringParameters["phone"],
	}

	contacts, err := contactService.SearchContacts(ctx, &input)
	if err != nil {
		log.Warn("search contacts failed", "error", err)
		return respond(response.SearchFailed(err))
	}
	return respond(response.SearchResult(contacts))
}

func handleUpdate(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id, ok := pathID(req)
	if !ok {
		return respond(response.BadRequest("ID do contato ausente"))
	}

	var input validator.UpdateContactInput
	if err := validator.Decode(req.Body, &input); err != nil {
		return respond(response.UpdateFailed(err))
	}

	if _, err := contactService.UpdateContact(ctx, id, &input); err != nil {
		log.Warn("update contact failed", "contact_id", id, "error", err)
		return respond(response.UpdateFailed(err))
	}
	return respond(response.Updated())
}

func handleDelete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id, ok := pathID(req)
	if !ok {
		return respond(response.BadRequest("ID do contato ausente"))
	}

	if err := contactService.DeleteContact(ctx, id); err != nil {
		log.Warn("delete contact failed", "contact_id", id, "error", err)
		return respond(response.DeleteFailed(err))
	}
	return respond(response.Deleted())
}

func pathID(req events.APIGatewayProxyRequest) (int64, bool) {
	raw := req.PathParameters["id"]
	if raw == "" {
		// Proxy integrations without a mapped path parameter still carry the
		// id as the last path segment.
		parts := strings.Split(strings.Trim(req.Path, "/"), "/")
		if len(parts) > 0 {
			raw = parts[len(parts)-1]
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func respond[T any](status int, envelope T) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"message":"Erro interno","errors":"Erro interno","action_code":0}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}, nil
}

func main() {
	lambda.Start(handler)
}

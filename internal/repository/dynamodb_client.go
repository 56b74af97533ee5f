package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rogerjeasy/bav-roger/internal/domain"
)

const (
	pkPrefixChat    = "CHAT#"
	pkPrefixContact = "CONTACT#"
	skMeta          = "META#"
	chatTTL         = 30 * 24 * time.Hour // 30-day TTL on chat records
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// MessageWriter persists chat messages.
type MessageWriter interface {
	SaveChatMessage(ctx context.Context, msg domain.ChatMessage) error
}

// ContactWriter persists contact-form submissions.
type ContactWriter interface {
	SaveContact(ctx context.Context, sub domain.ContactSubmission) error
}

// Client wraps a DynamoDB table shared by chat messages and contact
// submissions.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

func chatPK(id string) string {
	return pkPrefixChat + id
}

func contactPK(id string) string {
	return pkPrefixContact + id
}

func chatTTLValue(createdAt time.Time) int64 {
	return createdAt.Add(chatTTL).Unix()
}

// SaveChatMessage writes a chat message record. The conditional put rejects
// identifier collisions instead of silently overwriting.
func (c *Client) SaveChatMessage(ctx context.Context, msg domain.ChatMessage) error {
	if msg.ID == "" {
		return errors.New("repository: SaveChatMessage: message ID is required")
	}
	if msg.Content == "" {
		return errors.New("repository: SaveChatMessage: message content is required")
	}
	if !msg.Role.Valid() {
		return fmt.Errorf("repository: SaveChatMessage: invalid role %q", msg.Role)
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                chatMessageItem(msg),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: SaveChatMessage: %w", err)
	}
	return nil
}

// SaveContact writes a contact submission record.
func (c *Client) SaveContact(ctx context.Context, sub domain.ContactSubmission) error {
	if sub.ID == "" {
		return errors.New("repository: SaveContact: submission ID is required")
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                contactItem(sub),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: SaveContact: %w", err)
	}
	return nil
}

// GetChatMessage reads back a persisted chat message by id.
func (c *Client) GetChatMessage(ctx context.Context, id string) (domain.ChatMessage, error) {
	if id == "" {
		return domain.ChatMessage{}, errors.New("repository: GetChatMessage: id is required")
	}

	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: chatPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skMeta},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("repository: GetChatMessage: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.ChatMessage{}, fmt.Errorf("repository: GetChatMessage: message %q not found", id)
	}
	return itemToChatMessage(out.Item)
}

func chatMessageItem(msg domain.ChatMessage) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: chatPK(msg.ID)},
		"SK":        &types.AttributeValueMemberS{Value: skMeta},
		"id":        &types.AttributeValueMemberS{Value: msg.ID},
		"role":      &types.AttributeValueMemberS{Value: string(msg.Role)},
		"content":   &types.AttributeValueMemberS{Value: msg.Content},
		"aiModel":   &types.AttributeValueMemberS{Value: msg.ModelID},
		"createdAt": &types.AttributeValueMemberS{Value: msg.CreatedAt.UTC().Format(time.RFC3339Nano)},
		"ttl":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", chatTTLValue(msg.CreatedAt))},
	}
}

func contactItem(sub domain.ContactSubmission) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: contactPK(sub.ID)},
		"SK":        &types.AttributeValueMemberS{Value: skMeta},
		"id":        &types.AttributeValueMemberS{Value: sub.ID},
		"name":      &types.AttributeValueMemberS{Value: sub.Name},
		"email":     &types.AttributeValueMemberS{Value: sub.Email},
		"subject":   &types.AttributeValueMemberS{Value: sub.Subject},
		"message":   &types.AttributeValueMemberS{Value: sub.Message},
		"createdAt": &types.AttributeValueMemberS{Value: sub.CreatedAt.UTC().Format(time.RFC3339Nano)},
	}
}

func itemToChatMessage(item map[string]types.AttributeValue) (domain.ChatMessage, error) {
	id, err := strAttr(item, "id")
	if err != nil {
		return domain.ChatMessage{}, err
	}
	role, err := strAttr(item, "role")
	if err != nil {
		return domain.ChatMessage{}, err
	}
	content, err := strAttr(item, "content")
	if err != nil {
		return domain.ChatMessage{}, err
	}
	model, _ := strAttr(item, "aiModel") // allow empty

	msg := domain.ChatMessage{
		ID:      id,
		Role:    domain.Role(role),
		Content: content,
		ModelID: model,
	}
	if raw, err := strAttr(item, "createdAt"); err == nil {
		if ts, parseErr := time.Parse(time.RFC3339Nano, raw); parseErr == nil {
			msg.CreatedAt = ts
		}
	}
	return msg, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

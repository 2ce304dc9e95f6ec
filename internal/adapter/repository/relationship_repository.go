package repository

import (
	"context"
	"fmt"

	authzedpb "github.com/authzed/authzed-go/proto/authzed/api/v1"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
)

const (
	workspaceObjectType = "workspace"
	userObjectType      = "user"
)

var allRoles = []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleMember}

// SpiceDBRelationshipRepository 멤버십을 SpiceDB workspace#role@user 관계로 기록
type SpiceDBRelationshipRepository struct {
	client authzedpb.PermissionsServiceClient
}

// NewSpiceDBRelationshipRepository client가 nil이면 아무것도 기록하지 않는 구현체를 반환합니다.
func NewSpiceDBRelationshipRepository(client authzedpb.PermissionsServiceClient) repository.RelationshipRepository {
	if client == nil {
		return noopRelationshipRepository{}
	}
	return &SpiceDBRelationshipRepository{client: client}
}

func memberRelationship(workspaceID, userID string, role entity.Role) *authzedpb.Relationship {
	return &authzedpb.Relationship{
		Resource: &authzedpb.ObjectReference{ObjectType: workspaceObjectType, ObjectId: workspaceID},
		Relation: role.String(),
		Subject: &authzedpb.SubjectReference{
			Object: &authzedpb.ObjectReference{ObjectType: userObjectType, ObjectId: userID},
		},
	}
}

// TouchMember 역할 관계를 TOUCH하고 나머지 역할 관계는 DELETE합니다.
func (r *SpiceDBRelationshipRepository) TouchMember(ctx context.Context, workspaceID, userID string, role entity.Role) error {
	updates := make([]*authzedpb.RelationshipUpdate, 0, len(allRoles))
	for _, candidate := range allRoles {
		op := authzedpb.RelationshipUpdate_OPERATION_DELETE
		if candidate == role {
			op = authzedpb.RelationshipUpdate_OPERATION_TOUCH
		}
		updates = append(updates, &authzedpb.RelationshipUpdate{
			Operation:    op,
			Relationship: memberRelationship(workspaceID, userID, candidate),
		})
	}

	if _, err := r.client.WriteRelationships(ctx, &authzedpb.WriteRelationshipsRequest{Updates: updates}); err != nil {
		return fmt.Errorf("SpiceDB 관계 기록 실패: %w", err)
	}
	return nil
}

func (r *SpiceDBRelationshipRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	_, err := r.client.DeleteRelationships(ctx, &authzedpb.DeleteRelationshipsRequest{
		RelationshipFilter: &authzedpb.RelationshipFilter{
			ResourceType:       workspaceObjectType,
			OptionalResourceId: workspaceID,
		},
	})
	if err != nil {
		return fmt.Errorf("SpiceDB 관계 삭제 실패: %w", err)
	}
	return nil
}

type noopRelationshipRepository struct{}

func (noopRelationshipRepository) TouchMember(context.Context, string, string, entity.Role) error {
	return nil
}

func (noopRelationshipRepository) DeleteWorkspace(context.Context, string) error {
	return nil
}

package repository

// Repositories 모든 레포지토리 인터페이스의 컬렉션
type Repositories struct {
	Workspace     WorkspaceRepository
	WorkspaceUser WorkspaceUserRepository
	User          UserRepository
	Cache         CacheRepository
	Events        EventPublisher
	Mail          MailRepository
	Relationship  RelationshipRepository
}

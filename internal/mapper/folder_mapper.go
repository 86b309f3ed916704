package mapper

import (
	"noter-be/internal/entity"
	"noter-be/internal/model"
)

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}

	return &entity.Folder{
		Id:        f.Id,
		Name:      f.Name,
		AuthorId:  f.AuthorId,
		IsPublic:  f.IsPublic,
		ParentId:  f.ParentId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}

	return &model.Folder{
		Id:        f.Id,
		Name:      f.Name,
		AuthorId:  f.AuthorId,
		IsPublic:  f.IsPublic,
		ParentId:  f.ParentId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *FolderMapper) ToEntities(folders []*model.Folder) []*entity.Folder {
	entities := make([]*entity.Folder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

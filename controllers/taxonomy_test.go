package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabsu-me/kabsu-be/model"
)

func TestBuildTaxonomyTree(t *testing.T) {
	campuses := []*model.Campus{
		{Id: 100, Name: "Main", Slug: "main"},
		{Id: 200, Name: "Satellite", Slug: "satellite"},
	}
	colleges := []*model.College{
		{Id: 10, CampusId: 100, Name: "Engineering", Slug: "coe"},
		{Id: 11, CampusId: 100, Name: "Arts and Sciences", Slug: "cas"},
		{Id: 20, CampusId: 200, Name: "Agriculture", Slug: "ca"},
	}
	programs := []*model.Program{
		{Id: 1, CollegeId: 10, Name: "Computer Science", Slug: "bscs"},
		{Id: 2, CollegeId: 10, Name: "Information Technology", Slug: "bsit"},
		{Id: 3, CollegeId: 11, Name: "Biology", Slug: "bsbio"},
	}

	tree := buildTaxonomyTree(campuses, colleges, programs)

	require.Len(t, tree.campuses, 2)
	main := tree.campuses[0]
	assert.Equal(t, int64(100), main.Id)
	require.Len(t, main.Colleges, 2)
	assert.Len(t, main.Colleges[0].Programs, 2)
	assert.Len(t, main.Colleges[1].Programs, 1)

	// campus without colleges still serializes as an empty list
	satellite := tree.campuses[1]
	require.Len(t, satellite.Colleges, 1)
	assert.Empty(t, satellite.Colleges[0].Programs)
	assert.NotNil(t, satellite.Colleges[0].Programs)

	require.Contains(t, tree.pathsByProgram, int64(1))
	assert.Equal(t, &model.ProgramPath{ProgramId: 1, CollegeId: 10, CampusId: 100}, tree.pathsByProgram[1])
	assert.Equal(t, &model.ProgramPath{ProgramId: 3, CollegeId: 11, CampusId: 100}, tree.pathsByProgram[3])
}

func TestBuildTaxonomyTreeEmpty(t *testing.T) {
	tree := buildTaxonomyTree(nil, nil, nil)
	assert.Empty(t, tree.campuses)
	assert.Empty(t, tree.pathsByProgram)
}

// A program pointing at an unknown college still gets a path so existing
// accounts keep working while the tree is being edited.
func TestBuildTaxonomyTreeOrphanProgram(t *testing.T) {
	tree := buildTaxonomyTree(nil, nil, []*model.Program{
		{Id: 7, CollegeId: 99, Name: "Orphan", Slug: "orphan"},
	})
	require.Contains(t, tree.pathsByProgram, int64(7))
	assert.Equal(t, int64(99), tree.pathsByProgram[7].CollegeId)
	assert.Equal(t, int64(0), tree.pathsByProgram[7].CampusId)
}

package controllers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

const TreeUpdateInterval = time.Minute * 20

type taxonomyTree struct {
	campuses       []*model.CampusTree
	pathsByProgram map[int64]*model.ProgramPath
	builtAt        time.Time
}

// TaxonomyController serves the campus/college/program tree from an
// in-process cache refreshed on a ticker and after admin mutations. Feed
// membership checks do NOT go through this cache; they re-resolve against
// the store on every page.
type TaxonomyController struct {
	db             db.TaxonomyDatabase
	cachedTree     *taxonomyTree
	cachedTreeLock sync.Mutex
	updateTicker   *time.Ticker
}

func NewTaxonomyController(c context.Context, database db.TaxonomyDatabase) (*TaxonomyController, error) {
	controller := &TaxonomyController{
		db: database,
	}
	if err := controller.updateCachedTree(c); err != nil {
		return nil, err
	}

	controller.updateTicker = time.NewTicker(TreeUpdateInterval)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Println("recovered while attempting to update cached taxonomy tree", r)
			}
		}()
		for range controller.updateTicker.C {
			controller.attemptToUpdateCachedTree(c)
		}
	}()

	return controller, nil
}

// Tree returns the cached campus tree.
func (tc *TaxonomyController) Tree() []*model.CampusTree {
	tc.cachedTreeLock.Lock()
	defer tc.cachedTreeLock.Unlock()
	return tc.cachedTree.campuses
}

// PathForProgram returns the cached tree position for a program, or nil if
// the program is unknown to the cache.
func (tc *TaxonomyController) PathForProgram(programId int64) *model.ProgramPath {
	tc.cachedTreeLock.Lock()
	defer tc.cachedTreeLock.Unlock()
	return tc.cachedTree.pathsByProgram[programId]
}

// Refresh rebuilds the cache in the background after an admin mutation.
func (tc *TaxonomyController) Refresh(c context.Context) {
	go tc.attemptToUpdateCachedTree(c)
}

func (tc *TaxonomyController) attemptToUpdateCachedTree(c context.Context) {
	if err := tc.updateCachedTree(c); err != nil {
		log.Println("an error occurred while updating the cached taxonomy tree", err)
	}
}

func (tc *TaxonomyController) updateCachedTree(c context.Context) error {
	campuses, err := tc.db.GetCampuses(c)
	if err != nil {
		return err
	}
	colleges, err := tc.db.GetColleges(c)
	if err != nil {
		return err
	}
	programs, err := tc.db.GetPrograms(c)
	if err != nil {
		return err
	}
	newTree := buildTaxonomyTree(campuses, colleges, programs)

	tc.cachedTreeLock.Lock()
	defer tc.cachedTreeLock.Unlock()
	if tc.cachedTree == nil || newTree.builtAt.After(tc.cachedTree.builtAt) {
		tc.cachedTree = newTree
	}
	return nil
}

func buildTaxonomyTree(campuses []*model.Campus, colleges []*model.College, programs []*model.Program) *taxonomyTree {
	collegesByCampus := make(map[int64][]*model.CollegeTree)
	collegeTreesById := make(map[int64]*model.CollegeTree)
	campusByCollege := make(map[int64]int64)
	for _, college := range colleges {
		collegeTree := &model.CollegeTree{College: college, Programs: []*model.Program{}}
		collegesByCampus[college.CampusId] = append(collegesByCampus[college.CampusId], collegeTree)
		collegeTreesById[college.Id] = collegeTree
		campusByCollege[college.Id] = college.CampusId
	}

	pathsByProgram := make(map[int64]*model.ProgramPath)
	for _, program := range programs {
		if collegeTree, ok := collegeTreesById[program.CollegeId]; ok {
			collegeTree.Programs = append(collegeTree.Programs, program)
		}
		pathsByProgram[program.Id] = &model.ProgramPath{
			ProgramId: program.Id,
			CollegeId: program.CollegeId,
			CampusId:  campusByCollege[program.CollegeId],
		}
	}

	campusTrees := make([]*model.CampusTree, len(campuses))
	for i, campus := range campuses {
		children := collegesByCampus[campus.Id]
		if children == nil {
			children = []*model.CollegeTree{}
		}
		campusTrees[i] = &model.CampusTree{Campus: campus, Colleges: children}
	}

	return &taxonomyTree{
		campuses:       campusTrees,
		pathsByProgram: pathsByProgram,
		builtAt:        time.Now(),
	}
}

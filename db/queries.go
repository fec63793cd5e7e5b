package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Project queries

//go:embed sql/upsert_project_opened.sql
var UpsertProjectOpenedSQL string

//go:embed sql/upsert_project_saved.sql
var UpsertProjectSavedSQL string

//go:embed sql/select_project_by_path.sql
var SelectProjectByPathSQL string

//go:embed sql/select_projects_recent.sql
var SelectProjectsRecentSQL string

//go:embed sql/delete_project.sql
var DeleteProjectSQL string

// Snapshot queries

//go:embed sql/insert_snapshot.sql
var InsertSnapshotSQL string

//go:embed sql/select_latest_snapshot.sql
var SelectLatestSnapshotSQL string

//go:embed sql/select_snapshots_by_project.sql
var SelectSnapshotsByProjectSQL string

//go:embed sql/prune_snapshots.sql
var PruneSnapshotsSQL string

//go:embed sql/delete_snapshots_by_project.sql
var DeleteSnapshotsByProjectSQL string

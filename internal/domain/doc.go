// Package domain defines the core business entities and errors for the
// task-management application: task boards organized by month, the tasks on
// them, deliverable and reporter lookup entities, users, and team days off.
package domain

// Package common provides small helpers shared across the project.
package common

import (
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

var idNode *snowflake.Node

func init() {
	// Node id can be set per instance when running more than one replica.
	node := cast.ToInt64(os.Getenv("WAREHUB_NODE_ID"))
	var err error
	idNode, err = snowflake.NewNode(node)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a new store-assigned identifier.
func UUIDint64() int64 {
	return idNode.Generate().Int64()
}

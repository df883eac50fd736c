package snowflake

import (
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

func GenID() int64 {
	return node.Generate().Int64()
}

// GenBookingID identifies one booking call shared by all of its appointments.
func GenBookingID() string {
	return "bk" + strconv.FormatInt(node.Generate().Int64(), 36)
}

// Package xmlcodec persists block scripts as XML documents.
//
// Every node is written as an element named after its kind (NumberBlock,
// Statement, IfControl, ...). Structure is expressed with fixed wrapper
// elements:
//
//	<Script>
//	  <Trigger><EventBlock Event="OnHeartbeat"/></Trigger>
//	  <Spine Minimum="1">
//	    <Pegs>
//	      <Peg>
//	        <IfControl X="40" Y="12">
//	          <Condition><Statement Behaviour="IsNight"><Slots/></Statement></Condition>
//	          <Consequences><Spine Minimum="1"><Pegs><Peg/></Pegs></Spine></Consequences>
//	        </IfControl>
//	      </Peg>
//	    </Pegs>
//	  </Spine>
//	</Script>
//
// Reading dispatches through a Registry, a whitelist from element name to
// factory. Statements, events and objects are persisted by name and resolved
// through a block.BehaviourResolver on read. Any structural violation aborts
// the read with a *block.FormatError; only malformed X/Y coordinates are
// tolerated, leaving the node unplaced.
package xmlcodec
